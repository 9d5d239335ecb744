package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/avela/wpactl/internal/ctrl"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive control-interface shell",
	Long: `Open an interactive shell on the control socket. Each line is sent
to the daemon verbatim and the reply printed, like wpa_cli. Type "quit"
or press Ctrl-D to exit.`,
	Args: cobra.NoArgs,
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

		fmt.Printf("connected to %s, type \"quit\" to exit\n", cfg.CtrlPath())
		return runShell(conn, os.Stdin)
	},
}

// commandSender is the part of the connection the shell loop uses.
type commandSender interface {
	Request(cmd string) (string, error)
}

// runShell reads lines from r and forwards them to the daemon until EOF
// or a quit command.
func runShell(conn commandSender, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	prompt := colorBold + "> " + colorReset

	fmt.Print(prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print(prompt)
			continue
		}

		// Tokenize to catch unbalanced quotes early and to recognize
		// shell builtins; the daemon still gets the raw line.
		tokens, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%sparse error: %v%s\n", colorRed, err, colorReset)
			fmt.Print(prompt)
			continue
		}
		if len(tokens) > 0 {
			switch strings.ToLower(tokens[0]) {
			case "quit", "exit":
				return nil
			case "help":
				printShellHelp()
				fmt.Print(prompt)
				continue
			}
		}

		reply, err := conn.Request(line)
		if err != nil {
			if errors.Is(err, ctrl.ErrClosed) {
				return err
			}
			fmt.Fprintf(os.Stderr, "%serror: %v%s\n", colorRed, err, colorReset)
			fmt.Print(prompt)
			continue
		}
		fmt.Print(reply)
		if !strings.HasSuffix(reply, "\n") {
			fmt.Println()
		}
		fmt.Print(prompt)
	}
	fmt.Println()
	return scanner.Err()
}

func printShellHelp() {
	fmt.Println("common commands:")
	fmt.Println("  PING                 check daemon liveness")
	fmt.Println("  STATUS               current connection state")
	fmt.Println("  SCAN                 trigger a scan")
	fmt.Println("  SCAN_RESULTS         list scan results")
	fmt.Println("  LIST_NETWORKS        configured networks")
	fmt.Println("  quit                 leave the shell")
}
