package cmd

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gvsurenderreddy-rakoshare/btext/compat"
	"github.com/gvsurenderreddy-rakoshare/btext/extension"
	"github.com/gvsurenderreddy-rakoshare/btext/internal/config"
)

var (
	decodeLedgerPath string
	decodePeerAddr   string
)

var decodeCmd = &cobra.Command{
	Use:   "decode <id> <hex-payload>",
	Short: "Decode a hex-encoded extension payload for the given local extension id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id uint8
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid extension id %q: %w", args[0], err)
		}
		payload, err := hex.DecodeString(args[1])
		if err != nil {
			return fmt.Errorf("invalid hex payload: %w", err)
		}

		settings, err := config.LoadSettings()
		if err != nil {
			settings = config.DefaultSettings()
		}
		reg := extension.NewRegistry(extension.Enabled{
			Metadata:     settings.Extensions.Metadata,
			PeerExchange: settings.Extensions.PeerExchange,
		})

		if decodeLedgerPath != "" {
			ledger, err := compat.OpenLedger(decodeLedgerPath)
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer ledger.Close()
			extension.RecoveryHook = func(extensionName string, _ byte, raw []byte, strictErr error) {
				if _, err := ledger.Record(extensionName, decodePeerAddr, strictErr, raw, time.Now().UTC()); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to record non-compliant peer: %v\n", err)
				}
			}
			defer func() { extension.RecoveryHook = nil }()
		}

		msg, err := extension.Decode(reg, id, payload)
		if err != nil {
			return err
		}

		fmt.Printf("%#v\n", msg)
		return nil
	},
}

func init() {
	decodeCmd.Flags().StringVar(&decodeLedgerPath, "ledger", "", "path to a SQLite ledger recording non-compliant (lenient-decode) peers")
	decodeCmd.Flags().StringVar(&decodePeerAddr, "peer", "unknown", "peer address to attribute lenient-decode recoveries to")
	rootCmd.AddCommand(decodeCmd)
}
