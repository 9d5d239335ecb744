package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/avela/wpactl/internal/config"
	"github.com/avela/wpactl/internal/history"
)

var (
	eventsLimit int
	eventsPrune time.Duration
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recorded daemon events",
	Long: `List events previously recorded by "wpactl monitor --record",
newest first. With --prune, delete events older than the given age
instead of listing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbPath := cfg.History.DatabasePath
		if dbPath == "" {
			dbPath = config.DefaultPaths().HistoryFile()
		}
		store, err := history.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		if eventsPrune > 0 {
			n, err := store.Prune(ctx, time.Now().Add(-eventsPrune))
			if err != nil {
				return err
			}
			fmt.Printf("pruned %d events\n", n)
			return nil
		}

		recs, err := store.Recent(ctx, eventsLimit)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("no recorded events (run: wpactl monitor --record)")
			return nil
		}
		for _, r := range recs {
			ts := r.At.Format("2006-01-02 15:04:05")
			if r.Payload != "" {
				fmt.Printf("%s%s%s  %-8s %s %s\n", colorDim, ts, colorReset, r.Iface, r.Name, r.Payload)
			} else {
				fmt.Printf("%s%s%s  %-8s %s\n", colorDim, ts, colorReset, r.Iface, r.Name)
			}
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().IntVar(&eventsLimit, "limit", 50, "maximum number of events to list")
	eventsCmd.Flags().DurationVar(&eventsPrune, "prune", 0, "delete events older than this age instead of listing")
}
