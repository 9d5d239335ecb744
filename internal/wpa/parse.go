// Package wpa parses the textual replies of common control-interface
// commands: STATUS key=value blocks and the tab-separated tables of
// SCAN_RESULTS and LIST_NETWORKS. The wire text is daemon-defined; these
// parsers are tolerant of unknown keys and extra columns.
package wpa

import (
	"strconv"
	"strings"
)

// ParseStatus parses a STATUS (or STATUS-VERBOSE) reply into its
// key=value pairs. Lines without '=' are skipped.
func ParseStatus(reply string) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		out[key] = value
	}
	return out
}

// ScanResult is one row of a SCAN_RESULTS reply.
type ScanResult struct {
	BSSID       string
	Frequency   int
	SignalLevel int
	Flags       []string
	SSID        string
}

// ParseScanResults parses a SCAN_RESULTS reply. The first line is the
// column header and is skipped; malformed rows are dropped.
func ParseScanResults(reply string) []ScanResult {
	var results []ScanResult
	for i, line := range strings.Split(reply, "\n") {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			continue
		}
		freq, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		signal, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		results = append(results, ScanResult{
			BSSID:       fields[0],
			Frequency:   freq,
			SignalLevel: signal,
			Flags:       parseFlags(fields[3]),
			SSID:        fields[4],
		})
	}
	return results
}

// Network is one row of a LIST_NETWORKS reply.
type Network struct {
	ID    int
	SSID  string
	BSSID string
	Flags []string
}

// ParseNetworks parses a LIST_NETWORKS reply.
func ParseNetworks(reply string) []Network {
	var networks []Network
	for i, line := range strings.Split(reply, "\n") {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		n := Network{
			ID:    id,
			SSID:  fields[1],
			BSSID: fields[2],
		}
		if len(fields) > 3 {
			n.Flags = parseFlags(fields[3])
		}
		networks = append(networks, n)
	}
	return networks
}

// parseFlags splits "[WPA2-PSK-CCMP][ESS]" into its bracketed tokens.
func parseFlags(s string) []string {
	var flags []string
	for _, f := range strings.Split(s, "]") {
		f = strings.TrimPrefix(strings.TrimSpace(f), "[")
		if f != "" {
			flags = append(flags, f)
		}
	}
	return flags
}
