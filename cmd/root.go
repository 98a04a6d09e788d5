// Package cmd implements btextctl, a small demo CLI over the extension
// codec. The codec itself takes no CLI input (spec.md §6); this exists to
// let an operator exercise handshake/decode/pex by hand.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gvsurenderreddy-rakoshare/btext/internal/config"
	"github.com/gvsurenderreddy-rakoshare/btext/internal/logging"
)

// Version information, set via ldflags during build.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "btextctl",
	Short:   "Inspect and build BitTorrent extension protocol messages",
	Long:    `btextctl is a demo CLI over the btext extension codec (BEP 10/9/11).`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			settings = config.DefaultSettings()
		}
		return logging.Configure(settings.Logging)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("btextctl version {{.Version}}\n")
}
