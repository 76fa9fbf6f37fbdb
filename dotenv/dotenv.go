// Package dotenv implements folio.Credentials backed by a .env file.
package dotenv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/fwojciec/folio"
	"github.com/joho/godotenv"
)

var _ folio.Credentials = (*Credentials)(nil)

// Credentials reads the API key from a .env file on every call, so editing
// the file rotates the key without a restart.
//
// When the file does not exist or does not define Var, Fallback is used.
// Fallback is typically the process environment value, read once in main.
type Credentials struct {
	Path     string
	Var      string
	Fallback string
}

// APIKey implements [folio.Credentials].
func (c *Credentials) APIKey(_ context.Context) (string, error) {
	if c.Path != "" {
		env, err := godotenv.Read(c.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return "", fmt.Errorf("dotenv: read %s: %w: %w", c.Path, folio.ErrTransport, err)
		default:
			if key := env[c.Var]; key != "" {
				return key, nil
			}
		}
	}
	if c.Fallback != "" {
		return c.Fallback, nil
	}
	return "", fmt.Errorf("dotenv: %s not set (use -api-key flag, environment variable or %s): %w", c.Var, c.Path, folio.ErrTransport)
}
