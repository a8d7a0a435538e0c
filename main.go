package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/linelog/cli"
	"github.com/ardnew/linelog/log"
)

func main() {
	if err := cli.Run(context.Background(), os.Exit, os.Args[1:]...); err != nil {
		// Command errors implement slog.LogValuer.
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
