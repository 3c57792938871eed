// Command reelkeeper manages a personal movie collection from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reelkeeper/reelkeeper/cmd/reelkeeper/app"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	a, err := app.New(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := a.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
