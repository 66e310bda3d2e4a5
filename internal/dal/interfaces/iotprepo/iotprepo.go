package iotprepo

import "context"

// IOTPRepository stores one-time codes keyed by phone number. Codes expire on
// their own; a missing code reads back as empty.
type IOTPRepository interface {
	// Store saves the code for a phone number with the configured TTL
	Store(ctx context.Context, phoneNumber, code string) error

	// Get returns the stored code, or "" when absent or expired
	Get(ctx context.Context, phoneNumber string) (string, error)

	// Delete removes a consumed code
	Delete(ctx context.Context, phoneNumber string) error
}
