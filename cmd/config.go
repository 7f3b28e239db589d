package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	WebhookMaxAttempts int
	WebhookBaseBackoff time.Duration
	WebhookMaxBackoff  time.Duration
	WebhookPoolSize    int
	WebhookClaimTTL    time.Duration
	WebhookSendTimeout time.Duration

	OutboxBatchSize int

	InvoiceAmountCents int64
	InvoiceCurrency    string
}
