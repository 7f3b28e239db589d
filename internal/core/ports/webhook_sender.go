package ports

import "context"

// WebhookSender pushes one signed event payload to a subscriber endpoint.
// Implementations bound the attempt with a timeout and report any non-2xx
// response as an error; retry scheduling is the caller's concern.
type WebhookSender interface {
	Send(ctx context.Context, endpoint string, eventID string, payload []byte, secret string) error
}
