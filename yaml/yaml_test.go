package yaml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), "folio.yaml", `
server:
  addr: ":9090"
  session_ttl: 5m
models:
  voice: Puck
persona:
  name: Ada Lovelace
`)
	cfg, err := yaml.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Server.SessionTTL)
	assert.Equal(t, int64(16<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "Puck", cfg.Models.Voice)
	assert.Equal(t, "gemini-3-pro-preview", cfg.Models.Chat)
	assert.Equal(t, "Ada Lovelace", cfg.Persona.Name)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Credentials.EnvVar)
}

func TestLoad_ProfilePath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "profile.md", "Wrote the first program.")
	path := writeFile(t, dir, "folio.yaml", "persona:\n  profile: inline\n  profile_path: profile.md\n")

	cfg, err := yaml.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Wrote the first program.", cfg.Persona.Profile)
}

func TestLoad_MissingProfile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), "folio.yaml", "persona:\n  profile_path: nope.md\n")
	_, err := yaml.Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()
	_, err := yaml.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, t.TempDir(), "folio.yaml", "server: [unclosed\n")
	_, err := yaml.Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"empty addr":      "server:\n  addr: \"\"\n",
		"zero ttl":        "server:\n  session_ttl: 0s\n",
		"negative budget": "models:\n  thinking_budget: -1\n",
		"empty env var":   "credentials:\n  env_var: \"\"\n",
		"zero body limit": "server:\n  max_body_bytes: 0\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "folio.yaml", content)
			_, err := yaml.Load(path)
			assert.ErrorIs(t, err, folio.ErrValidation)
		})
	}
}
