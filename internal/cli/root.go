// Package cli defines the cobra command tree for nm-dmenu and maps pipeline
// errors onto exit codes.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/scbrown/nm-dmenu/internal/config"
	"github.com/scbrown/nm-dmenu/internal/logging"
	"github.com/spf13/cobra"
)

// pipeline is the app the root command runs. Execute sets it.
var pipeline *app

// rootCmd is the top-level nm-dmenu command.
var rootCmd = &cobra.Command{
	Use:   "nm-dmenu",
	Short: "Pick a Wi-Fi network with dmenu and connect to it",
	Long: `nm-dmenu lists the Wi-Fi networks NetworkManager can see, lets you pick
one with dmenu, and connects to it with nmcli.

A saved connection profile is brought up when one exists. Otherwise a new
connection is made to the chosen access point. The first menu entry triggers
an active rescan instead.

Extra dmenu arguments are read from DMENU_DEFAULT_OPS (whitespace-separated).
Set NM_DMENU_LOG_LEVEL=debug to trace every nmcli call on stderr.

Exit status is 0 on success and 1 on error. When dmenu exits non-zero
(for example because it was dismissed) nm-dmenu exits silently with the same
status.`,
	Example: `  # Bind to a key in your window manager
  nm-dmenu

  # Case-insensitive, vertical menu
  DMENU_DEFAULT_OPS="-i -l 15" nm-dmenu`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if pipeline == nil {
			return errors.New("nm-dmenu: pipeline not initialized")
		}
		return pipeline.run(cmd.Context())
	},
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	cfg := config.Load(nil)
	logger := logging.New(os.Stderr, cfg.LogLevel)

	pipeline = appFactory(cfg, logger)
	defer pipeline.close()

	err := rootCmd.ExecuteContext(context.Background())
	return pipeline.report(err)
}
