package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the daemon answers on the control socket",
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

		reply, err := conn.Request("PING")
		if err != nil {
			return err
		}
		if strings.TrimSpace(reply) != "PONG" {
			return fmt.Errorf("unexpected ping reply %q", reply)
		}
		fmt.Printf("%s: %s\n", cfg.Interface, strings.TrimSpace(reply))
		return nil
	},
}
