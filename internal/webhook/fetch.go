package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/SunilKividor/bfhl-webhook-client/models"
)

// Fetch posts the identity to url and returns the challenge envelope. It
// makes a single attempt; every failure is wrapped in ErrFetchFailed.
func (c *Client) Fetch(ctx context.Context, url string, identity models.IdentityRequest) (*models.Envelope, error) {
	body, err := marshal(identity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFetchFailed, err)
	}

	status, respBody, err := c.post(ctx, url, body, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrFetchFailed, err)
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return nil, fmt.Errorf("%w: %w", models.ErrFetchFailed, models.NewStatusError(status, respBody))
	}

	var env models.Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", models.ErrFetchFailed, err)
	}

	if env.Webhook == "" || env.AccessToken == "" {
		return nil, fmt.Errorf("%w: response is missing webhook or accessToken", models.ErrFetchFailed)
	}

	c.log.WithFields(logrus.Fields{
		"status":        status,
		"payload_bytes": len(env.Data),
	}).Debug("challenge envelope received")

	return &env, nil
}
