package metrics_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SunilKividor/bfhl-webhook-client/internal/metrics"
)

func TestRecorder_Attempts(t *testing.T) {
	r := metrics.New()

	r.Attempt(errors.New("boom"))
	r.Attempt(errors.New("boom"))
	r.Attempt(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.SubmitAttempts.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SubmitAttempts.WithLabelValues("success")))
}

func TestRecorder_Finish(t *testing.T) {
	r := metrics.New()
	now := time.Unix(1_700_000_000, 0)

	r.Finish(now, nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.LastRunSuccess))
	assert.Equal(t, 1_700_000_000.0, testutil.ToFloat64(r.LastRunTime))

	r.Finish(now, errors.New("failed"))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.LastRunSuccess))
}

func TestRecorder_ObserveStage(t *testing.T) {
	r := metrics.New()

	r.ObserveStage("fetch", time.Now(), nil)
	r.ObserveStage("submit", time.Now(), errors.New("down"))

	assert.Equal(t, 2, testutil.CollectAndCount(r.StageDuration))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	r := metrics.New()
	r.Problems.WithLabelValues("mutual_followers").Inc()
	r.OutcomeSize.Set(3)

	path := filepath.Join(t.TempDir(), "bfhl.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `bfhl_client_problems_total{kind="mutual_followers"} 1`)
	assert.Contains(t, string(data), "bfhl_client_outcome_size 3")
}
