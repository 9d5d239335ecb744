package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rawCmd = &cobra.Command{
	Use:   "raw COMMAND [ARG...]",
	Short: "Send a raw control-interface command and print the reply",
	Long: `Send an arbitrary control-interface command verbatim and print the
daemon's reply. Useful for commands wpactl has no dedicated subcommand
for, e.g.:

  wpactl raw LIST_NETWORKS
  wpactl raw SET_NETWORK 0 ssid '"homenet"'`,
	Args: cobra.MinimumNArgs(1),
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

		reply, err := conn.Request(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Print(reply)
		if !strings.HasSuffix(reply, "\n") {
			fmt.Println()
		}
		return nil
	},
}
