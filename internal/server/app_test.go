package server

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/aycode/internal/logging"
	"github.com/dmitrijs2005/aycode/internal/server/config"
	"github.com/dmitrijs2005/aycode/internal/server/models"
	"github.com/dmitrijs2005/aycode/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.DatabaseDSN = "file:" + filepath.Join(t.TempDir(), "app.db")
	c.BcryptCost = 4
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_GeneratesKeyWhenMissing(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewJSONLogger(&buf, "info")

	app, err := NewApp(context.Background(), testConfig(t), logger)
	require.NoError(t, err)
	defer app.db.Close()

	assert.Contains(t, buf.String(), "no secret key configured")
}

func TestNewApp_UnknownDriver(t *testing.T) {
	c := testConfig(t)
	c.DatabaseDriver = "oracle"

	_, err := NewApp(context.Background(), c, logging.Nop())
	assert.Error(t, err)
}

func TestApp_RunBootstrapsAdminAndStops(t *testing.T) {
	c := testConfig(t)
	c.SecretKey = "k"
	c.AdminEmail = "root@example.com"

	app, err := NewApp(context.Background(), c, logging.Nop())
	require.NoError(t, err)

	u, err := app.userService.Register(context.Background(), services.RegisterInput{
		Name: "Root", Email: "root@example.com", Phone: "1", DateOfBirth: "2000-01-01",
		Password: "pw", Gender: "x", SubscriptionPlan: "pro",
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		p, err := app.userService.Profile(context.Background(), u.ID)
		return err == nil && p.Role == models.RoleAdmin
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}
