// Package cmd implements the wpactl command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

// Persistent flags shared by all subcommands.
var (
	flagConfig    string
	flagInterface string
	flagCtrlDir   string
)

var rootCmd = &cobra.Command{
	Use:   "wpactl",
	Short: "control wpa_supplicant/hostapd over its control socket",
	Long: `wpactl - a control-interface client for wpa_supplicant and hostapd
  - issue commands and read replies (ping, status, raw)
  - follow unsolicited daemon events (monitor)
  - scan and pick networks interactively`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&flagInterface, "interface", "i", "", "wireless interface name")
	rootCmd.PersistentFlags().StringVar(&flagCtrlDir, "ctrl-dir", "", "control socket directory")

	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(rawCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(networksCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(versionCmd)
}
