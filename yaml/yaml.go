// Package yaml loads folio configuration files.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/folio"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "folio.yaml"

// Load reads the YAML file at path over folio.DefaultConfig. Keys missing
// from the file keep their defaults. A missing file is an error unless path
// is DefaultPath. A persona profile_path is resolved relative to the
// configuration file and its content replaces persona.profile.
func Load(path string) (folio.Config, error) {
	cfg := folio.DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
		return cfg, nil
	case err != nil:
		return folio.Config{}, fmt.Errorf("yaml: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return folio.Config{}, fmt.Errorf("yaml: parse %s: %w", path, err)
	}
	if p := cfg.Persona.ProfilePath; p != "" {
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(path), p)
		}
		profile, err := os.ReadFile(p)
		if err != nil {
			return folio.Config{}, fmt.Errorf("yaml: read persona profile: %w", err)
		}
		cfg.Persona.Profile = string(profile)
	}
	if err := validate(cfg); err != nil {
		return folio.Config{}, fmt.Errorf("yaml: %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg folio.Config) error {
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is empty: %w", folio.ErrValidation)
	}
	if cfg.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be positive: %w", folio.ErrValidation)
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive: %w", folio.ErrValidation)
	}
	if cfg.Models.ThinkingBudget < 0 {
		return fmt.Errorf("models.thinking_budget must not be negative: %w", folio.ErrValidation)
	}
	if cfg.Credentials.EnvVar == "" {
		return fmt.Errorf("credentials.env_var is empty: %w", folio.ErrValidation)
	}
	return nil
}
