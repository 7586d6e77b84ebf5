// Package main is the entry point for the telly build tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/telly/cmd/telly/commands"
	"go.trai.ch/telly/internal/adapters/interrupt"
	"go.trai.ch/telly/internal/app"
	"go.trai.ch/telly/internal/core/domain"
	_ "go.trai.ch/telly/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := interrupt.Default().NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer cleanup()

	var opts []commands.Option
	if f, ok := components.Logger.(commands.LogFormatter); ok {
		opts = append(opts, commands.WithLogFormatter(f))
	}
	cli := commands.New(components.App, opts...)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		if code, ok := domain.ExitCode(err); ok && code > 0 {
			return code
		}
		return 1
	}
	return 0
}
