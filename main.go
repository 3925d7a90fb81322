package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shandysiswandi/tweetprep/internal/app"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgerror"
)

const configPath = "./config/config.yaml"

func main() {
	application, err := app.New(configPath) // Load config and wire the pipeline
	if err != nil {
		slog.Error("failed to init application", "error", err)
		os.Exit(pkgerror.ExitCode(err))
	}

	_, err = application.Run() // Fetch, verify, extract, shuffle and write

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	application.Stop(ctx)
	cancel()

	os.Exit(pkgerror.ExitCode(err))
}
