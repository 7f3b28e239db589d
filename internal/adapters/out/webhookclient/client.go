// Package webhookclient pushes signed event payloads to subscriber
// endpoints over HTTP.
package webhookclient

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Header names of the outbound webhook contract.
const (
	HeaderSignature = "X-Webhook-Signature"
	HeaderEvent     = "X-Webhook-Event"
)

// Client delivers one payload per call, signed with the subscriber's secret.
// Receivers verify the body against the signature header and de-duplicate on
// the event id header.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a webhook sender. The timeout bounds the whole attempt
// including connection setup; the delivery worker sizes its claim lease
// above it.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send posts the payload to the endpoint. Any transport failure or non-2xx
// response is an error; the caller schedules retries.
func (c *Client) Send(
	ctx context.Context, endpoint string, eventID string, payload []byte, secret string,
) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderSignature, Signature(payload, secret))
	req.Header.Set(HeaderEvent, eventID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook endpoint returned %s", resp.Status)
	}

	return nil
}

// Signature computes the signature header value for a payload:
// sha256=<hex(hmac-sha256(secret, payload))>.
func Signature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
