package main

import (
	"os"

	"github.com/gsea/gsea/internal/cli"
)

// Set by the release build via ldflags.
var (
	commit  = "HEAD"
	version = "latest"
)

func main() {
	if err := cli.Execute(version, commit); err != nil {
		os.Exit(1)
	}
}
