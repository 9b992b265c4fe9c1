package cli

import (
	"bufio"
	"io"
	"time"

	"github.com/dmitrijs2005/aycode/internal/client/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the aycode command tree reading prompts from in and
// writing results to out.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := &App{reader: bufio.NewReader(in), out: out}

	var (
		configPath string
		server     string
		timeout    time.Duration
	)

	root := &cobra.Command{
		Use:   "aycode",
		Short: "Command-line client for the AY-Code platform",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("server") {
				cfg.ServerURL = server
			}
			if cmd.Flags().Changed("timeout") {
				cfg.RequestTimeout = timeout
			}
			return a.init(cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetIn(in)
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "JSON config file (default $"+config.ConfigEnv+")")
	root.PersistentFlags().StringVarP(&server, "server", "s", "", "server URL, e.g. http://127.0.0.1:8080")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "HTTP request timeout")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.meCmd(),
		a.logoutCmd(),
		a.problemsCmd(),
		a.roleCmd(),
	)

	return root
}
