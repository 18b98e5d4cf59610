package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SunilKividor/bfhl-webhook-client/internal/config"
	"github.com/SunilKividor/bfhl-webhook-client/internal/metrics"
	"github.com/SunilKividor/bfhl-webhook-client/internal/runner"
	"github.com/SunilKividor/bfhl-webhook-client/internal/webhook"
)

// Set via ldflags.
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "bfhl-client",
		Short:         "Fetch the hiring challenge, solve it and submit the answer",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	log.WithFields(logrus.Fields{
		"run_id":  runID,
		"version": version,
	}).Info("application starting")

	rec := metrics.New()
	client := webhook.New(log,
		webhook.WithTimeout(cfg.HTTPTimeout),
		webhook.WithAttemptTimeout(cfg.AttemptTimeout),
		webhook.WithRetry(cfg.SubmitAttempts, cfg.SubmitDelay),
		webhook.WithRunID(runID),
		webhook.WithMetrics(rec),
	)

	if err := runner.New(cfg, client, log, rec).Run(ctx); err != nil {
		log.WithError(err).WithField("run_id", runID).Error("run failed")
		return err
	}

	log.WithField("run_id", runID).Info("application done")
	return nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log, nil
}
