package cmd

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avela/wpactl/internal/events"
)

type fakeMonitor struct {
	queue []string
}

func (f *fakeMonitor) Pending() (bool, error) { return len(f.queue) > 0, nil }

func (f *fakeMonitor) Recv() (string, error) {
	raw := f.queue[0]
	f.queue = f.queue[1:]
	return raw, nil
}

type fakeSink struct {
	recorded []events.Event
}

func (f *fakeSink) Record(_ context.Context, _ string, ev events.Event) error {
	f.recorded = append(f.recorded, ev)
	return nil
}

func TestMonitorLoopDrainsAndRecords(t *testing.T) {
	mon := &fakeMonitor{queue: []string{
		"<2>CTRL-EVENT-SCAN-STARTED ",
		"<2>CTRL-EVENT-SCAN-RESULTS ",
	}}
	sink := &fakeSink{}

	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()

	err := monitorLoop(ctx, "wlan0", mon, sink)
	require.NoError(t, err)
	require.Len(t, sink.recorded, 2)
	assert.Equal(t, events.ScanStarted, sink.recorded[0].Name)
	assert.Equal(t, events.ScanResults, sink.recorded[1].Name)
	assert.Empty(t, mon.queue)
}

func TestMonitorLoopStopsOnTerminating(t *testing.T) {
	mon := &fakeMonitor{queue: []string{"<3>CTRL-EVENT-TERMINATING "}}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := monitorLoop(ctx, "wlan0", mon, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminating")
}

type fakeSender struct {
	sent    []string
	replies map[string]string
}

func (f *fakeSender) Request(cmd string) (string, error) {
	f.sent = append(f.sent, cmd)
	if reply, ok := f.replies[cmd]; ok {
		return reply, nil
	}
	return "UNKNOWN COMMAND\n", nil
}

func TestRunShellSendsLinesVerbatim(t *testing.T) {
	sender := &fakeSender{replies: map[string]string{
		"PING": "PONG\n",
		`SET_NETWORK 0 ssid "homenet"`: "OK\n",
	}}
	input := strings.NewReader("PING\n" +
		`SET_NETWORK 0 ssid "homenet"` + "\n" +
		"quit\n")

	err := runShell(sender, input)
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "PING", sender.sent[0])
	assert.Equal(t, `SET_NETWORK 0 ssid "homenet"`, sender.sent[1])
}

func TestRunShellSkipsBlankAndBadQuoting(t *testing.T) {
	sender := &fakeSender{}
	input := strings.NewReader("\n   \n" +
		`SET_NETWORK 0 ssid "unterminated` + "\n" +
		"exit\n")

	err := runShell(sender, input)
	require.NoError(t, err)
	assert.Empty(t, sender.sent, "blank and malformed lines must not reach the daemon")
}

func TestRunShellStopsAtEOF(t *testing.T) {
	sender := &fakeSender{replies: map[string]string{"PING": "PONG\n"}}
	err := runShell(sender, strings.NewReader("PING\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"PING"}, sender.sent)
}

func TestShouldDisableColors(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, shouldDisableColors())

	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")
	assert.True(t, shouldDisableColors())

	t.Setenv("TERM", "xterm-256color")
	assert.False(t, shouldDisableColors())
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Setenv("WPACTL_INTERFACE", "")
	t.Setenv("WPACTL_CTRL_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	flagConfig = ""
	flagInterface = "wlp3s0"
	flagCtrlDir = "/tmp/hostapd"
	t.Cleanup(func() {
		flagInterface = ""
		flagCtrlDir = ""
	})

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "wlp3s0", cfg.Interface)
	assert.Equal(t, "/tmp/hostapd", cfg.CtrlDir)
	assert.Equal(t, "/tmp/hostapd/wlp3s0", cfg.CtrlPath())
}
