package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/avela/wpactl/internal/wpa"
)

// statusKeyOrder lists the fields shown first, in this order; anything
// else follows alphabetically.
var statusKeyOrder = []string{"wpa_state", "ssid", "bssid", "freq", "ip_address", "key_mgmt"}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current connection status",
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

		reply, err := conn.Request("STATUS")
		if err != nil {
			return err
		}

		fields := wpa.ParseStatus(reply)
		printed := make(map[string]bool)
		for _, key := range statusKeyOrder {
			if v, ok := fields[key]; ok {
				fmt.Printf("%-12s %s\n", key, v)
				printed[key] = true
			}
		}
		rest := make([]string, 0, len(fields))
		for key := range fields {
			if !printed[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			fmt.Printf("%-12s %s\n", key, fields[key])
		}
		return nil
	},
}
