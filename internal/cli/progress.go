package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/scbrown/nm-dmenu/internal/logging"
)

// startProgress shows a spinner with msg on w while a slow nmcli call runs.
// It does nothing unless w is a terminal; launched from a key binding there
// is nobody watching stderr.
func startProgress(w io.Writer, msg string) (stop func()) {
	if !logging.IsTerminal(w) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}
