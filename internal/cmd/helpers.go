package cmd

import (
	"fmt"

	"github.com/avela/wpactl/internal/config"
	"github.com/avela/wpactl/internal/ctrl"
)

// loadConfig loads the configuration and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagInterface != "" {
		cfg.Interface = flagInterface
	}
	if flagCtrlDir != "" {
		cfg.CtrlDir = flagCtrlDir
	}
	return cfg, nil
}

// openConn opens a detached control connection per the configuration.
func openConn(cfg *config.Config) (*ctrl.Conn, error) {
	conn, err := ctrl.New().
		CtrlPath(cfg.CtrlPath()).
		ReplyBufSize(cfg.Reply.BufBytes).
		RequestTimeout(cfg.RequestTimeout()).
		Open()
	if err != nil {
		return nil, fmt.Errorf("cannot reach %s: %w (is the daemon running?)", cfg.CtrlPath(), err)
	}
	return conn, nil
}
