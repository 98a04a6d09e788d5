package cmd

import (
	"encoding/hex"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/gvsurenderreddy-rakoshare/btext/extension"
)

var pexCmd = &cobra.Command{
	Use:   "pex <ip:port>...",
	Short: "Build a sample BEP 11 peer exchange 'added' payload from IPv4 addresses",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pex := &extension.PeerExchange{}
		for _, arg := range args {
			host, portStr, err := net.SplitHostPort(arg)
			if err != nil {
				return fmt.Errorf("invalid endpoint %q: %w", arg, err)
			}
			ip := net.ParseIP(host).To4()
			if ip == nil {
				return fmt.Errorf("%q is not a valid IPv4 address", host)
			}
			var port int
			if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
				return fmt.Errorf("invalid port in %q: %w", arg, err)
			}
			pex.Added = append(pex.Added, extension.Endpoint{IP: ip, Port: uint16(port)})
			pex.AddedFlags = append(pex.AddedFlags, extension.PexFlagSupportsUTP)
		}

		payload, err := extension.EncodePeerExchange(pex)
		if err != nil {
			return err
		}

		fmt.Println(hex.EncodeToString(payload))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pexCmd)
}
