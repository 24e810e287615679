package main

import (
	"os"

	"github.com/scbrown/nm-dmenu/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
