package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avela/wpactl/internal/config"
	"github.com/avela/wpactl/internal/events"
	"github.com/avela/wpactl/internal/history"
)

var monitorRecord bool

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Attach to the daemon and print events as they arrive",
	Long: `Attach to the control interface for unsolicited event delivery and
print each event as it arrives. Ctrl-C detaches and exits. With --record
the events are also written to the history database (see wpactl events).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var store *history.Store
		if monitorRecord || cfg.History.Enabled {
			dbPath := cfg.History.DatabasePath
			if dbPath == "" {
				dbPath = config.DefaultPaths().HistoryFile()
			}
			store, err = history.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
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

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(os.Stderr, "monitoring %s (Ctrl-C to stop)\n", cfg.Interface)
		err = monitorLoop(ctx, cfg.Interface, mon, store)

		// Best effort: detach cleanly so the daemon drops this client; the
		// transport closes either way.
		if detached, derr := mon.Detach(); derr == nil {
			detached.Close()
		} else {
			mon.Close()
		}
		return err
	},
}

// eventSink receives drained events; satisfied by *history.Store.
type eventSink interface {
	Record(ctx context.Context, iface string, ev events.Event) error
}

// monitorLoop polls for pending events and prints each one until the
// context is cancelled. The poll interval keeps the loop responsive to
// Ctrl-C without busy-waiting; the daemon owns the event queue.
func monitorLoop(ctx context.Context, iface string, mon pendingReceiver, store eventSink) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		for {
			ok, err := mon.Pending()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			raw, err := mon.Recv()
			if err != nil {
				return err
			}
			ev := events.Parse(raw)
			printEvent(ev)
			if store != nil {
				if err := store.Record(ctx, iface, ev); err != nil {
					slog.Warn("failed to record event", "name", ev.Name, "error", err)
				}
			}
			if ev.Name == events.Terminating {
				return fmt.Errorf("daemon is terminating")
			}
		}
	}
}

// pendingReceiver is the slice of the Monitor surface the loop needs;
// narrowed for tests.
type pendingReceiver interface {
	Pending() (bool, error)
	Recv() (string, error)
}

// printEvent writes one event line, colored by priority.
func printEvent(ev events.Event) {
	color := ""
	switch {
	case ev.Priority >= events.PriorityError:
		color = colorRed
	case ev.Priority == events.PriorityWarning:
		color = colorYellow
	case ev.Priority <= events.PriorityDebug:
		color = colorDim
	}
	ts := ev.ReceivedAt.Format("15:04:05.000")
	if ev.Payload != "" {
		fmt.Printf("%s%s %s %s%s\n", color, ts, ev.Name, ev.Payload, colorReset)
	} else {
		fmt.Printf("%s%s %s%s\n", color, ts, ev.Name, colorReset)
	}
}

func init() {
	monitorCmd.Flags().BoolVar(&monitorRecord, "record", false, "record events to the history database")
}
