package folio

import (
	"context"
	"fmt"
)

// Credentials supplies the provider API key. Implementations are consulted
// immediately before every provider call so a rotated key takes effect on
// the next call.
type Credentials interface {
	APIKey(ctx context.Context) (string, error)
}

// StaticKey is a fixed API key, typically supplied by a command-line flag.
type StaticKey string

// APIKey returns the key, or an ErrTransport error when it is empty.
func (k StaticKey) APIKey(context.Context) (string, error) {
	if k == "" {
		return "", fmt.Errorf("API key is empty: %w", ErrTransport)
	}
	return string(k), nil
}

var _ Credentials = StaticKey("")
