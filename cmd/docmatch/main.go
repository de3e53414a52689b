package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"docmatch/internal/cli"
)

var (
	version = "dev"
	commit  = ""
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(version, commit).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
