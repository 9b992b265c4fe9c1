package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-driver", "-d", "-s", "-t"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "picks config flag out of server flags",
			args:    []string{"-driver", "pgx", "-c", "aycode.json", "-t", "1h"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "aycode.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=aycode.json", "-a", ":8080"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=aycode.json"},
		},
		{
			name:    "dsn value containing equals signs",
			args:    []string{"-d=postgres://u:p@db/aycode?sslmode=disable", "-c", "x.json"},
			allowed: serverFlags,
			want:    []string{"-d=postgres://u:p@db/aycode?sslmode=disable"},
		},
		{
			name:    "server flags kept in order, config dropped",
			args:    []string{"-c", "x.json", "-s", "k3y", "-driver", "sqlite", "-secure"},
			allowed: serverFlags,
			want:    []string{"-s", "k3y", "-driver", "sqlite"},
		},
		{
			name:    "next flag is not taken as a value",
			args:    []string{"-c", "-t", "30m"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-a", ":8080", "-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "nothing allowed matches",
			args:    []string{"positional", "-x=1"},
			allowed: []string{"-c", "-config"},
			want:    []string{},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: serverFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("short -c with value", func(t *testing.T) {
		assert.Equal(t, "/path/short.json", ConfigPath([]string{"-c", "/path/short.json"}, ""))
	})

	t.Run("long -config with value", func(t *testing.T) {
		assert.Equal(t, "/path/long.json", ConfigPath([]string{"-a", ":80", "-config", "/path/long.json"}, ""))
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		assert.Empty(t, ConfigPath([]string{"-x", "1", "-y", "2"}, ""))
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		assert.Equal(t, "/path/2.json", ConfigPath([]string{"-c", "/path/1.json", "-config", "/path/2.json"}, ""))
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("AYCODE_TEST_CONFIG", "/env/cfg.json")
		assert.Equal(t, "/env/cfg.json", ConfigPath(nil, "AYCODE_TEST_CONFIG"))
	})

	t.Run("flag beats env", func(t *testing.T) {
		t.Setenv("AYCODE_TEST_CONFIG", "/env/cfg.json")
		assert.Equal(t, "/flag.json", ConfigPath([]string{"-c", "/flag.json"}, "AYCODE_TEST_CONFIG"))
	})
}
