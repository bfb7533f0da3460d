package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-formstate/cmd/formstate/commands"
)

// Version is set via ldflags during build.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx, Version); err != nil {
		fmt.Fprintln(os.Stderr, "formstate:", err)
		stop()
		os.Exit(1)
	}
}
