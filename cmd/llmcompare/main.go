package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/llmcompare/cli"
	"github.com/grovetools/llmcompare/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		_ = cli.NewErrorHandler(verbose).Handle(err)
		stop()
		os.Exit(1)
	}
}
