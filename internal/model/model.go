// Package model defines the core types for nm-dmenu: visible Wi-Fi networks
// and the reserved menu entry that requests a rescan.
package model

import "fmt"

// RescanLabel is the menu entry that triggers an active rescan. It is always
// the first entry and no network label may equal it.
const RescanLabel = "Scan networks"

// Network is one access point reported by a single scan.
type Network struct {
	SSID     string   `json:"ssid"`
	BSSID    string   `json:"bssid"`
	Freq     string   `json:"freq"`
	Security []string `json:"security"`
	// Label is the unique menu text, assigned once per scan.
	Label string `json:"label,omitempty"`
}

// Secured reports whether the network advertises any security protocol.
func (n Network) Secured() bool {
	return len(n.Security) > 0
}

// RawLabel returns the label before de-duplication: "ssid (freq)".
func (n Network) RawLabel() string {
	return fmt.Sprintf("%s (%s)", n.SSID, n.Freq)
}
