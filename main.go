package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/mrlokans/storefront/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	root := cli.NewRootCmd(Version)

	// "serve" is the default when no command is given.
	if len(os.Args) < 2 {
		root.SetArgs([]string{"serve"})
	}

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(Version+" ("+Commit+")"),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}
