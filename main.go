package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/charmbracelet/log"

	"github.com/cruxstack/email-validator-view-go/internal/app"
	"github.com/cruxstack/email-validator-view-go/internal/config"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}

	handler := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.Level(cfg.AppLogLevel),
		ReportTimestamp: true,
		Formatter:       log.JSONFormatter,
	})
	slog.SetDefault(slog.New(handler))

	a, err := app.NewApp(context.Background(), cfg)
	if err != nil {
		log.Fatal("failed to init app", "error", err)
	}

	slog.Info("email validator ready", "gateway", a.Gateway.Name())

	lambda.Start(a.HandleHTTP)
}
