package nmcli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/scbrown/nm-dmenu/internal/model"
)

// linesPerNetwork is the number of lines nmcli prints per access point in
// multiline mode for the SSID,BSSID,FREQ,SECURITY field set.
const linesPerNetwork = 4

// Widths of the "SSID:", "BSSID:", "FREQ:" and "SECURITY:" line prefixes.
var prefixWidths = [linesPerNetwork]int{5, 6, 5, 9}

var bssidRE = regexp.MustCompile(`^([0-9A-F]{2}:){5}[0-9A-F]{2}$`)

// ParseError reports scanner output that does not decompose into complete
// network records.
type ParseError struct {
	Lines  int
	Record int // -1 when the error concerns the output as a whole
	Reason string
}

func (e *ParseError) Error() string {
	if e.Record < 0 {
		return fmt.Sprintf("parse nmcli output (%d lines): %s", e.Lines, e.Reason)
	}
	return fmt.Sprintf("parse nmcli output: record %d: %s", e.Record, e.Reason)
}

// Parse turns the multiline output of a SSID,BSSID,FREQ,SECURITY listing into
// network records. Every 4 consecutive lines form one record; any other line
// count is rejected.
func Parse(out string) ([]model.Network, error) {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil, nil
	}
	lines := strings.Split(out, "\n")
	if len(lines)%linesPerNetwork != 0 {
		return nil, &ParseError{
			Lines:  len(lines),
			Record: -1,
			Reason: fmt.Sprintf("line count is not a multiple of %d", linesPerNetwork),
		}
	}

	nets := make([]model.Network, 0, len(lines)/linesPerNetwork)
	for i := 0; i < len(lines); i += linesPerNetwork {
		n, err := parseRecord(lines[i : i+linesPerNetwork])
		if err != nil {
			err.Lines = len(lines)
			err.Record = i / linesPerNetwork
			return nil, err
		}
		nets = append(nets, n)
	}
	return nets, nil
}

func parseRecord(group []string) (model.Network, *ParseError) {
	var fields [linesPerNetwork]string
	for j, line := range group {
		w := prefixWidths[j]
		if len(line) < w {
			return model.Network{}, &ParseError{Reason: fmt.Sprintf("line %q is shorter than its %d-byte prefix", line, w)}
		}
		fields[j] = unescape(line[w:])
	}

	n := model.Network{
		SSID:     fields[0],
		BSSID:    fields[1],
		Freq:     fields[2],
		Security: []string{},
	}
	if !bssidRE.MatchString(n.BSSID) {
		return model.Network{}, &ParseError{Reason: fmt.Sprintf("invalid BSSID %q", n.BSSID)}
	}
	if fields[3] != "" {
		n.Security = strings.Split(fields[3], " ")
	}
	return n, nil
}

// unescape reverses nmcli's get-values escaping of ':' and '\'.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == ':' || s[i+1] == '\\') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
