// Command yoshi-config prints and validates a project's resolved build
// configuration.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nibzard/yoshi-config/cmd"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 on success, 1 on failure (or an
// invalid config), 130 when interrupted.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Run(ctx, os.Args[1:])
	switch {
	case err == nil:
		return 0
	case ctx.Err() != nil:
		fmt.Fprintln(os.Stderr, "interrupted")
		return 130
	case errors.Is(err, cmd.ErrInvalidConfig):
		// validate already printed the issues
		return 1
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}
