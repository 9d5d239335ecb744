package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/avela/wpactl/internal/ctrl"
	"github.com/avela/wpactl/internal/events"
	"github.com/avela/wpactl/internal/picker"
	"github.com/avela/wpactl/internal/wpa"
)

var (
	scanWait time.Duration
	scanPick bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Trigger a scan and list the networks found",
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

		mon, err := conn.Attach()
		if err != nil {
			conn.Close()
			return err
		}
		defer mon.Close()

		reply, err := mon.Request("SCAN", nil)
		if err != nil {
			return err
		}
		// FAIL-BUSY means a scan is already running; its results will do.
		if trimmed := strings.TrimSpace(reply); trimmed != "OK" && trimmed != "FAIL-BUSY" {
			return fmt.Errorf("scan rejected: %s", trimmed)
		}

		if err := waitForScanResults(mon, scanWait); err != nil {
			return err
		}

		reply, err = mon.Request("SCAN_RESULTS", nil)
		if err != nil {
			return err
		}
		results := wpa.ParseScanResults(reply)
		if len(results) == 0 {
			fmt.Println("no networks found")
			return nil
		}

		if scanPick {
			return pickResult(results)
		}

		fmt.Printf("%-20s %6s %6s  %s\n", "BSSID", "FREQ", "SIGNAL", "SSID")
		for _, r := range results {
			ssid := picker.StripANSI(r.SSID)
			if ssid == "" {
				ssid = "<hidden>"
			}
			fmt.Printf("%-20s %6d %6d  %s\n", r.BSSID, r.Frequency, r.SignalLevel, ssid)
		}
		return nil
	},
}

// waitForScanResults drains events until the daemon announces scan
// completion or the wait budget runs out. A timeout is not an error;
// whatever the results table holds at that point gets shown.
func waitForScanResults(mon *ctrl.Monitor, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		ok, err := mon.Pending()
		if err != nil {
			return err
		}
		if !ok {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		raw, err := mon.Recv()
		if err != nil {
			return err
		}
		if events.Parse(raw).Name == events.ScanResults {
			return nil
		}
	}
	return nil
}

// pickResult runs the interactive picker and prints the chosen network.
func pickResult(results []wpa.ScanResult) error {
	lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).ColorProfile())

	p := tea.NewProgram(picker.NewModel(results))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}
	model, ok := final.(picker.Model)
	if !ok {
		return fmt.Errorf("picker returned unexpected model")
	}
	chosen, ok := model.Result()
	if !ok {
		return nil // cancelled
	}
	fmt.Printf("%s\t%s\n", chosen.BSSID, chosen.SSID)
	return nil
}

func init() {
	scanCmd.Flags().DurationVar(&scanWait, "wait", 10*time.Second, "how long to wait for scan completion")
	scanCmd.Flags().BoolVar(&scanPick, "pick", false, "choose a network interactively")
}
