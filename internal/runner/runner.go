// Package runner sequences one fetch, solve and submit cycle.
package runner

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SunilKividor/bfhl-webhook-client/internal/challenge"
	"github.com/SunilKividor/bfhl-webhook-client/internal/config"
	"github.com/SunilKividor/bfhl-webhook-client/internal/metrics"
	"github.com/SunilKividor/bfhl-webhook-client/models"
)

// Challenger performs the two outbound calls of a run.
type Challenger interface {
	Fetch(ctx context.Context, url string, identity models.IdentityRequest) (*models.Envelope, error)
	Submit(ctx context.Context, url string, token models.Secret, result models.SubmissionResult) error
}

// Runner executes a single run.
type Runner struct {
	cfg     *config.Config
	client  Challenger
	log     *logrus.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// New creates a Runner. rec may be nil to disable metrics.
func New(cfg *config.Config, client Challenger, log *logrus.Logger, rec *metrics.Recorder) *Runner {
	return &Runner{
		cfg:     cfg,
		client:  client,
		log:     log,
		metrics: rec,
		now:     time.Now,
	}
}

// Run fetches the challenge, solves it and submits the outcome. Any error
// ends the run and is returned; nothing is submitted after a failed stage.
func (r *Runner) Run(ctx context.Context) (err error) {
	defer func() { r.finish(err) }()

	start := r.now()
	env, err := r.client.Fetch(ctx, r.cfg.FetchURL, r.cfg.Identity())
	r.observe("fetch", start, err)
	if err != nil {
		return fmt.Errorf("fetch challenge: %w", err)
	}

	log := r.log.WithField("webhook_host", hostOf(env.Webhook))
	log.Info("challenge received")

	start = r.now()
	problem, outcome, err := challenge.Dispatch(env.Data)
	r.observe("solve", start, err)
	if err != nil {
		return fmt.Errorf("solve challenge: %w", err)
	}

	log = log.WithFields(logrus.Fields{
		"kind":         problem.Kind(),
		"outcome_size": outcome.Len(),
	})
	log.Info("challenge solved")
	if r.metrics != nil {
		r.metrics.Problems.WithLabelValues(problem.Kind()).Inc()
		r.metrics.OutcomeSize.Set(float64(outcome.Len()))
	}

	result := models.SubmissionResult{RegNo: r.cfg.RegNo, Outcome: outcome}

	start = r.now()
	err = r.client.Submit(ctx, env.Webhook, env.AccessToken, result)
	r.observe("submit", start, err)
	if err != nil {
		return fmt.Errorf("submit result: %w", err)
	}

	log.Info("run complete")
	return nil
}

func (r *Runner) observe(stage string, start time.Time, err error) {
	if r.metrics != nil {
		r.metrics.ObserveStage(stage, start, err)
	}
}

func (r *Runner) finish(err error) {
	if r.metrics == nil {
		return
	}
	r.metrics.Finish(r.now(), err)

	if r.cfg.MetricsFile == "" {
		return
	}
	if werr := r.metrics.WriteTextfile(r.cfg.MetricsFile); werr != nil {
		r.log.WithError(werr).WithField("path", r.cfg.MetricsFile).Warn("failed to write metrics file")
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}
