package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avela/wpactl/internal/wpa"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List the configured networks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		conn, err := openConn(cfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		reply, err := conn.Request("LIST_NETWORKS")
		if err != nil {
			return err
		}
		networks := wpa.ParseNetworks(reply)
		if len(networks) == 0 {
			fmt.Println("no configured networks")
			return nil
		}

		fmt.Printf("%-4s %-32s %-20s %s\n", "ID", "SSID", "BSSID", "FLAGS")
		for _, n := range networks {
			flags := strings.Join(n.Flags, ",")
			if flags != "" {
				flags = "[" + flags + "]"
			}
			fmt.Printf("%-4d %-32s %-20s %s\n", n.ID, n.SSID, n.BSSID, flags)
		}
		return nil
	},
}
