package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/askiada/go-dws/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cobra.EnableCommandSorting = false
	cmd := cli.NewRootCommand(afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr)

	err := cmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
