package cli

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version and Commit are set at build time via -ldflags.
//
//	go build -ldflags "-X github.com/scbrown/nm-dmenu/internal/cli.Version=v0.1.0
//	  -X github.com/scbrown/nm-dmenu/internal/cli.Commit=48cae1d" ./cmd/nm-dmenu
var (
	Version = ""
	Commit  = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and commit hash",
	Long: `Print the nm-dmenu version string.

Release builds show the release version and dev builds show "dev".
The git commit hash is included when known.

Examples:
  nm-dmenu v0.1.0 (48cae1d)
  nm-dmenu dev (48cae1d)`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion(w io.Writer) {
	v := Version
	if v == "" {
		v = "dev"
	}

	c := Commit
	if c == "" {
		c = commitFromBuildInfo()
	}

	if c != "" {
		fmt.Fprintf(w, "nm-dmenu %s (%s)\n", v, shortCommit(c))
	} else {
		fmt.Fprintf(w, "nm-dmenu %s\n", v)
	}
}

// commitFromBuildInfo extracts vcs.revision from Go's embedded build info.
func commitFromBuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

// shortCommit returns the first 7 characters of a commit hash.
func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
