package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gvsurenderreddy-rakoshare/btext/extension"
)

var handshakeCmd = &cobra.Command{
	Use:   "handshake",
	Short: "Build and print a sample BEP 10 extended handshake payload",
	RunE: func(cmd *cobra.Command, args []string) error {
		noMetadata, _ := cmd.Flags().GetBool("no-metadata")
		noPex, _ := cmd.Flags().GetBool("no-pex")
		metadataSize, _ := cmd.Flags().GetInt64("metadata-size")

		h := &extension.Handshake{
			ExtensionIDs: map[string]int{},
			Extra:        extension.NewExtra(),
		}
		if !noMetadata {
			h.ExtensionIDs["ut_metadata"] = 1
		}
		if !noPex {
			h.ExtensionIDs["ut_pex"] = 2
		}
		if metadataSize > 0 {
			h.MetadataSize = &metadataSize
		}

		payload, err := extension.EncodeHandshake(h)
		if err != nil {
			return err
		}

		fmt.Println(hex.EncodeToString(payload))
		return nil
	},
}

func init() {
	handshakeCmd.Flags().Bool("no-metadata", false, "omit ut_metadata from the advertised extension map")
	handshakeCmd.Flags().Bool("no-pex", false, "omit ut_pex from the advertised extension map")
	handshakeCmd.Flags().Int64("metadata-size", 0, "advertise this metadata_size (0 omits the field)")
	rootCmd.AddCommand(handshakeCmd)
}
