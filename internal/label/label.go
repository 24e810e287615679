// Package label assigns the menu text shown for each network and maps a
// selected line back to its network.
package label

import (
	"errors"
	"sort"

	"github.com/scbrown/nm-dmenu/internal/model"
)

// marker is appended to a label until it no longer collides.
const marker = "*"

var (
	// ErrRescan is returned by Lookup when the selection is the rescan entry.
	ErrRescan = errors.New("rescan requested")
	// ErrUnknown is returned by Lookup when no network carries the selection.
	ErrUnknown = errors.New("selection does not match any network")
)

// Assign sets a unique Label on every network, in input order. The label is
// "ssid (freq)", with "*" appended until it differs from model.RescanLabel
// and from every label assigned before it.
func Assign(nets []model.Network) {
	assign(nets, model.RescanLabel)
}

func assign(nets []model.Network, reserved string) {
	taken := map[string]bool{reserved: true}
	for i := range nets {
		l := nets[i].RawLabel()
		for taken[l] {
			l += marker
		}
		taken[l] = true
		nets[i].Label = l
	}
}

// Sort orders networks by label.
func Sort(nets []model.Network) {
	sort.SliceStable(nets, func(i, j int) bool {
		return nets[i].Label < nets[j].Label
	})
}

// Labels returns the menu entries: the rescan entry followed by each
// network's label in slice order.
func Labels(nets []model.Network) []string {
	out := make([]string, 0, len(nets)+1)
	out = append(out, model.RescanLabel)
	for _, n := range nets {
		out = append(out, n.Label)
	}
	return out
}

// Lookup returns the network whose label is sel.
func Lookup(sel string, nets []model.Network) (model.Network, error) {
	if sel == model.RescanLabel {
		return model.Network{}, ErrRescan
	}
	for _, n := range nets {
		if n.Label == sel {
			return n, nil
		}
	}
	return model.Network{}, ErrUnknown
}
