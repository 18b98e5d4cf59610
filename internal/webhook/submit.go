package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"

	"github.com/SunilKividor/bfhl-webhook-client/models"
)

// Submit posts result to url, sending token verbatim in the Authorization
// header. Transport failures and non-2xx responses are retried with a fixed
// delay until the attempt budget is spent, after which a
// *models.SubmissionError carrying the last failure is returned.
func (c *Client) Submit(ctx context.Context, url string, token models.Secret, result models.SubmissionResult) error {
	body, err := marshal(result)
	if err != nil {
		return &models.SubmissionError{Last: err}
	}

	header := http.Header{}
	header.Set("Authorization", token.Value())

	backoff := c.backoff()
	attempts := 0
	var lastErr error

	for {
		attempts++
		lastErr = c.attempt(ctx, url, body, header)
		if c.metrics != nil {
			c.metrics.Attempt(lastErr)
		}
		if lastErr == nil {
			c.log.WithField("attempt", attempts).Info("result delivered")
			return nil
		}

		entry := c.log.WithError(lastErr).WithField("attempt", attempts)
		delay, stop := backoff.Next()
		if stop {
			entry.Error("result delivery failed, no attempts left")
			break
		}
		entry.WithField("retry_in", delay).Warn("result delivery failed, retrying")

		if err := c.sleeper.Sleep(ctx, delay); err != nil {
			lastErr = fmt.Errorf("wait for retry: %w; last failure: %w", err, lastErr)
			break
		}
	}

	return &models.SubmissionError{Attempts: attempts, Last: lastErr}
}

// backoff yields the delay before each retry; it is stateful, so every
// Submit builds its own.
func (c *Client) backoff() retry.Backoff {
	var b retry.Backoff = retry.BackoffFunc(func() (time.Duration, bool) { return 0, false })
	if c.retryDelay > 0 {
		b = retry.NewConstant(c.retryDelay)
	}
	return retry.WithMaxRetries(uint64(max(c.maxAttempts-1, 0)), b)
}

func (c *Client) attempt(ctx context.Context, url string, body []byte, header http.Header) error {
	if c.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.attemptTimeout)
		defer cancel()
	}

	status, respBody, err := c.post(ctx, url, body, header)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return models.NewStatusError(status, respBody)
	}

	c.log.WithFields(logrus.Fields{
		"status":   status,
		"response": string(respBody),
	}).Debug("webhook accepted result")
	return nil
}
