package wpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	reply := "bssid=aa:bb:cc:dd:ee:ff\n" +
		"freq=5180\n" +
		"ssid=homenet\n" +
		"wpa_state=COMPLETED\n" +
		"ip_address=192.168.1.17\n" +
		"not a pair\n"

	got := ParseStatus(reply)
	assert.Equal(t, "COMPLETED", got["wpa_state"])
	assert.Equal(t, "homenet", got["ssid"])
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", got["bssid"])
	assert.Len(t, got, 5)
}

func TestParseScanResults(t *testing.T) {
	reply := "bssid / frequency / signal level / flags / ssid\n" +
		"aa:bb:cc:dd:ee:ff\t2412\t-44\t[WPA2-PSK-CCMP][ESS]\thomenet\n" +
		"11:22:33:44:55:66\t5180\t-70\t[ESS]\tcafe wifi\n" +
		"bad\trow\n"

	got := ParseScanResults(reply)
	require.Len(t, got, 2)

	assert.Equal(t, "aa:bb:cc:dd:ee:ff", got[0].BSSID)
	assert.Equal(t, 2412, got[0].Frequency)
	assert.Equal(t, -44, got[0].SignalLevel)
	assert.Equal(t, []string{"WPA2-PSK-CCMP", "ESS"}, got[0].Flags)
	assert.Equal(t, "homenet", got[0].SSID)

	assert.Equal(t, "cafe wifi", got[1].SSID)
}

func TestParseScanResultsEmpty(t *testing.T) {
	assert.Empty(t, ParseScanResults("bssid / frequency / signal level / flags / ssid\n"))
	assert.Empty(t, ParseScanResults(""))
}

func TestParseNetworks(t *testing.T) {
	reply := "network id / ssid / bssid / flags\n" +
		"0\thomenet\tany\t[CURRENT]\n" +
		"1\twork\tany\t\n" +
		"2\tguest\tany\t[DISABLED]\n"

	got := ParseNetworks(reply)
	require.Len(t, got, 3)
	assert.Equal(t, 0, got[0].ID)
	assert.Equal(t, "homenet", got[0].SSID)
	assert.Equal(t, []string{"CURRENT"}, got[0].Flags)
	assert.Empty(t, got[1].Flags)
	assert.Equal(t, []string{"DISABLED"}, got[2].Flags)
}
