// Package picker implements the interactive scan-result picker used by
// `wpactl scan --pick`. It renders the networks found by a scan and lets
// the user filter and choose one.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avela/wpactl/internal/wpa"
)

// Model is the Bubble Tea model for the scan-result picker. The result
// list is static; filtering happens locally on each keystroke.
type Model struct {
	all      []wpa.ScanResult
	filtered []wpa.ScanResult

	query     string
	selection int // Index into filtered; -1 when empty
	cancelled bool

	width  int
	height int
}

// NewModel creates a picker over the given scan results.
func NewModel(results []wpa.ScanResult) Model {
	m := Model{all: results, selection: -1}
	m.applyFilter()
	return m
}

// Result returns the chosen scan result, or ok=false when the picker was
// cancelled or nothing matched.
func (m Model) Result() (wpa.ScanResult, bool) {
	if m.cancelled || m.selection < 0 || m.selection >= len(m.filtered) {
		return wpa.ScanResult{}, false
	}
	return m.filtered[m.selection], true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			return m, tea.Quit

		case tea.KeyUp:
			if m.selection > 0 {
				m.selection--
			}
			return m, nil

		case tea.KeyDown:
			if m.selection < len(m.filtered)-1 {
				m.selection++
			}
			return m, nil

		case tea.KeyBackspace:
			if len(m.query) > 0 {
				m.query = m.query[:len(m.query)-1]
				m.applyFilter()
			}
			return m, nil

		case tea.KeyRunes:
			m.query += string(msg.Runes)
			m.applyFilter()
			return m, nil
		}
	}
	return m, nil
}

// applyFilter rebuilds the filtered list for the current query and
// clamps the selection.
func (m *Model) applyFilter() {
	q := strings.ToLower(m.query)
	m.filtered = m.filtered[:0]
	for _, r := range m.all {
		if q == "" ||
			strings.Contains(strings.ToLower(r.SSID), q) ||
			strings.Contains(strings.ToLower(r.BSSID), q) {
			m.filtered = append(m.filtered, r)
		}
	}
	if len(m.filtered) == 0 {
		m.selection = -1
		return
	}
	if m.selection < 0 {
		m.selection = 0
	}
	if m.selection >= len(m.filtered) {
		m.selection = len(m.filtered) - 1
	}
}

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	signalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	queryStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("No matching networks"))
	} else {
		b.WriteString(m.viewList())
	}
	b.WriteRune('\n')
	b.WriteString(queryStyle.Render("> ") + m.query)
	return b.String()
}

// viewList renders one row per network with selection marker.
func (m Model) viewList() string {
	var b strings.Builder
	max := m.listHeight()
	for i, r := range m.filtered {
		if i >= max {
			break
		}
		row := m.renderRow(r)
		if i == m.selection {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString(normalStyle.Render("  " + row))
		}
		if i < len(m.filtered)-1 && i < max-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// renderRow formats one scan result: sanitized SSID, signal, bssid.
func (m Model) renderRow(r wpa.ScanResult) string {
	ssid := StripANSI(r.SSID)
	if ssid == "" {
		ssid = "<hidden>"
	}
	width := m.width
	if width < 48 {
		width = 80
	}
	ssid = Truncate(ssid, width-32)
	return fmt.Sprintf("%-*s %s", width-32, ssid,
		signalStyle.Render(fmt.Sprintf("%4d dBm  %s", r.SignalLevel, r.BSSID)))
}

// listHeight returns the number of visible rows (terminal height minus
// the query line).
func (m Model) listHeight() int {
	h := m.height - 1
	if h < 1 {
		h = 20 // Sensible default before first WindowSizeMsg
	}
	return h
}
