package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/dotenv"
	"github.com/fwojciec/folio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnv returns an env wired to studio with captured output, and a config
// file in a temp dir so no folio.yaml from the working directory is read.
func testEnv(t *testing.T, studio folio.Studio) (env, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	config := filepath.Join(dir, "folio.yaml")
	require.NoError(t, os.WriteFile(config, []byte("persona:\n  name: Ada Lovelace\n"), 0o644))

	var stdout bytes.Buffer
	e := env{
		getenv: func(string) string { return "" },
		stdout: &stdout,
		stderr: &bytes.Buffer{},
		studio: func(folio.Config, folio.Credentials, *slog.Logger) folio.Studio { return studio },
	}
	return e, &stdout, dir
}

func TestResolveCredentials(t *testing.T) {
	t.Parallel()
	cfg := folio.CredentialsConfig{EnvVar: "GEMINI_API_KEY", DotEnvPath: ".env"}

	t.Run("flag wins", func(t *testing.T) {
		t.Parallel()
		creds := resolveCredentials("flag-key", cfg, "env-key")
		key, err := creds.APIKey(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "flag-key", key)
	})

	t.Run("dotenv with environment fallback", func(t *testing.T) {
		t.Parallel()
		creds := resolveCredentials("", cfg, "env-key")
		assert.Equal(t, &dotenv.Credentials{Path: ".env", Var: "GEMINI_API_KEY", Fallback: "env-key"}, creds)
	})
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("no command", func(t *testing.T) {
		t.Parallel()
		e, _, _ := testEnv(t, &mock.Studio{})
		err := run(context.Background(), nil, e)
		require.Error(t, err)
		assert.Contains(t, e.stderr.(*bytes.Buffer).String(), "usage: folio")
	})

	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()
		e, _, _ := testEnv(t, &mock.Studio{})
		err := run(context.Background(), []string{"paint"}, e)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown command "paint"`)
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()
		e, stdout, _ := testEnv(t, &mock.Studio{})
		require.NoError(t, run(context.Background(), []string{"help"}, e))
		assert.Contains(t, stdout.String(), "serve")
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()
		e, _, dir := testEnv(t, &mock.Studio{})
		err := run(context.Background(), []string{"bio", "-config", filepath.Join(dir, "nope.yaml")}, e)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load config")
	})
}

func TestImage(t *testing.T) {
	t.Parallel()

	t.Run("writes the decoded PNG", func(t *testing.T) {
		t.Parallel()
		png := []byte("\x89PNG fake")
		var got folio.ImageRequest
		studio := &mock.Studio{
			GenerateImageFn: func(_ context.Context, req folio.ImageRequest) (string, error) {
				got = req
				return folio.PNGDataURI(png), nil
			},
		}
		e, stdout, dir := testEnv(t, studio)
		out := filepath.Join(dir, "cat.png")

		err := run(context.Background(), []string{"image",
			"-config", filepath.Join(dir, "folio.yaml"),
			"-size", "2k", "-ratio", "16:9", "-o", out,
			"a", "cat", "in", "space",
		}, e)
		require.NoError(t, err)
		assert.Equal(t, folio.ImageRequest{Prompt: "a cat in space", Size: folio.ImageSize2K, Ratio: "16:9"}, got)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, png, data)
		assert.Contains(t, stdout.String(), "wrote "+out)
	})

	t.Run("invalid size never reaches the provider", func(t *testing.T) {
		t.Parallel()
		e, _, dir := testEnv(t, &mock.Studio{})
		err := run(context.Background(), []string{"image",
			"-config", filepath.Join(dir, "folio.yaml"), "-size", "8K", "a cat",
		}, e)
		assert.ErrorIs(t, err, folio.ErrValidation)
	})

	t.Run("empty prompt", func(t *testing.T) {
		t.Parallel()
		e, _, dir := testEnv(t, &mock.Studio{})
		err := run(context.Background(), []string{"image", "-config", filepath.Join(dir, "folio.yaml")}, e)
		assert.ErrorIs(t, err, folio.ErrValidation)
	})
}

func TestEdit(t *testing.T) {
	t.Parallel()

	t.Run("sends the source as a data URI", func(t *testing.T) {
		t.Parallel()
		src := []byte("\x89PNG\r\n\x1a\n rest of image")
		var gotSource, gotInstruction string
		studio := &mock.Studio{
			EditImageFn: func(_ context.Context, source, instruction string) (string, bool, error) {
				gotSource, gotInstruction = source, instruction
				return folio.PNGDataURI([]byte("edited")), true, nil
			},
		}
		e, _, dir := testEnv(t, studio)
		in := filepath.Join(dir, "in.png")
		out := filepath.Join(dir, "out.png")
		require.NoError(t, os.WriteFile(in, src, 0o644))

		err := run(context.Background(), []string{"edit",
			"-config", filepath.Join(dir, "folio.yaml"), "-i", in, "-o", out, "add", "a", "hat",
		}, e)
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(src), gotSource)
		assert.Equal(t, "add a hat", gotInstruction)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "edited", string(data))
	})

	t.Run("absent image is an error", func(t *testing.T) {
		t.Parallel()
		studio := &mock.Studio{
			EditImageFn: func(context.Context, string, string) (string, bool, error) {
				return "", false, nil
			},
		}
		e, _, dir := testEnv(t, studio)
		in := filepath.Join(dir, "in.png")
		require.NoError(t, os.WriteFile(in, []byte("img"), 0o644))

		err := run(context.Background(), []string{"edit",
			"-config", filepath.Join(dir, "folio.yaml"), "-i", in, "-o", filepath.Join(dir, "out.png"), "add a hat",
		}, e)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no image")
		assert.NoFileExists(t, filepath.Join(dir, "out.png"))
	})

	t.Run("source is required", func(t *testing.T) {
		t.Parallel()
		e, _, dir := testEnv(t, &mock.Studio{})
		err := run(context.Background(), []string{"edit", "-config", filepath.Join(dir, "folio.yaml"), "add a hat"}, e)
		assert.ErrorIs(t, err, folio.ErrValidation)
	})
}

func TestSpeak(t *testing.T) {
	t.Parallel()

	t.Run("writes a WAV file", func(t *testing.T) {
		t.Parallel()
		pcm := folio.EncodePCM16([]float32{0, 0.5, -0.5, 0})
		studio := &mock.Studio{
			SynthesizeSpeechFn: func(_ context.Context, text string) (string, bool, error) {
				assert.Equal(t, "hello there", text)
				return base64.StdEncoding.EncodeToString(pcm), true, nil
			},
		}
		e, _, dir := testEnv(t, studio)
		out := filepath.Join(dir, "hello.wav")

		err := run(context.Background(), []string{"speak",
			"-config", filepath.Join(dir, "folio.yaml"), "-o", out, "hello", "there",
		}, e)
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		require.Len(t, data, 44+len(pcm))
		assert.Equal(t, "RIFF", string(data[:4]))
		assert.Equal(t, pcm, data[44:])
	})

	t.Run("odd-length payload fails", func(t *testing.T) {
		t.Parallel()
		studio := &mock.Studio{
			SynthesizeSpeechFn: func(context.Context, string) (string, bool, error) {
				return base64.StdEncoding.EncodeToString([]byte{1, 2, 3}), true, nil
			},
		}
		e, _, dir := testEnv(t, studio)
		err := run(context.Background(), []string{"speak",
			"-config", filepath.Join(dir, "folio.yaml"), "-o", filepath.Join(dir, "x.wav"), "hi",
		}, e)
		assert.ErrorIs(t, err, folio.ErrValidation)
	})
}

func TestBio(t *testing.T) {
	t.Parallel()

	t.Run("defaults to the persona name and prints sources", func(t *testing.T) {
		t.Parallel()
		studio := &mock.Studio{
			SearchBioFn: func(_ context.Context, subject string) (folio.GroundedAnswer, error) {
				assert.Equal(t, "Ada Lovelace", subject)
				return folio.NewGroundedAnswer("Ada wrote the **first** program.", []string{"https://example.com/ada"}), nil
			},
		}
		e, stdout, dir := testEnv(t, studio)

		err := run(context.Background(), []string{"bio", "-config", filepath.Join(dir, "folio.yaml")}, e)
		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "first")
		assert.NotContains(t, out, "**first**")
		assert.Contains(t, out, "Sources")
		assert.Contains(t, out, "https://example.com/ada")
	})

	t.Run("explicit name", func(t *testing.T) {
		t.Parallel()
		var subject string
		studio := &mock.Studio{
			SearchBioFn: func(_ context.Context, s string) (folio.GroundedAnswer, error) {
				subject = s
				return folio.NewGroundedAnswer(folio.SearchFallbackText, nil), nil
			},
		}
		e, stdout, dir := testEnv(t, studio)

		err := run(context.Background(), []string{"bio", "-config", filepath.Join(dir, "folio.yaml"), "Grace", "Hopper"}, e)
		require.NoError(t, err)
		assert.Equal(t, "Grace Hopper", subject)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(stdout.String()), folio.SearchFallbackText))
	})
}
