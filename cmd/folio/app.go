package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/folio"
	"github.com/fwojciec/folio/dotenv"
	"github.com/fwojciec/folio/gemini"
	folioyaml "github.com/fwojciec/folio/yaml"
)

// env carries everything a command takes from the process.
type env struct {
	getenv func(string) string
	stdout io.Writer
	stderr io.Writer
	studio func(cfg folio.Config, creds folio.Credentials, logger *slog.Logger) folio.Studio
}

// common holds the flags every command accepts.
type common struct {
	configPath string
	apiKey     string
	verbose    bool
}

func commonFlags(fs *flag.FlagSet) *common {
	c := &common{}
	fs.StringVar(&c.configPath, "config", folioyaml.DefaultPath, "Path to the YAML configuration")
	fs.StringVar(&c.apiKey, "api-key", "", "API key (overrides the dotenv file and environment)")
	fs.BoolVar(&c.verbose, "v", false, "Debug logging")
	return c
}

// app is the wired application shared by all commands.
type app struct {
	config  folio.Config
	persona folio.Persona
	studio  folio.Studio
	logger  *slog.Logger
}

// load reads the configuration and wires the Studio. Logs go to logOut.
func (c *common) load(e env, logOut io.Writer) (*app, error) {
	cfg, err := folioyaml.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	creds := resolveCredentials(c.apiKey, cfg.Credentials, e.getenv(cfg.Credentials.EnvVar))
	return &app{
		config:  cfg,
		persona: cfg.Persona.Persona(),
		studio:  e.studio(cfg, creds, logger),
		logger:  logger,
	}, nil
}

// resolveCredentials picks the API key source. An explicit flag wins;
// otherwise the dotenv file is re-read on every call with envKey, the
// process environment value, as the fallback.
func resolveCredentials(apiKeyFlag string, cfg folio.CredentialsConfig, envKey string) folio.Credentials {
	if apiKeyFlag != "" {
		return folio.StaticKey(apiKeyFlag)
	}
	return &dotenv.Credentials{
		Path:     cfg.DotEnvPath,
		Var:      cfg.EnvVar,
		Fallback: envKey,
	}
}

func newStudio(cfg folio.Config, creds folio.Credentials, logger *slog.Logger) folio.Studio {
	return gemini.New(creds,
		gemini.WithModels(cfg.Models),
		gemini.WithPersona(cfg.Persona.Persona()),
		gemini.WithLogger(logger),
	)
}
