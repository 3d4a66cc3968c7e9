package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"sheetsum/internal/app"
)

func main() {
	// A missing .env file is fine; the environment wins anyway.
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env")
	}

	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
