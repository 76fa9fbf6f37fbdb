// Command folio serves and drives the portfolio assistant.
//
// Usage:
//
//	folio serve [-addr :8080]               HTTP API for the website
//	folio chat  [-log path]                 terminal chat
//	folio image [-size 1K] [-ratio 1:1] [-o image.png] prompt...
//	folio edit  -i in.png [-o edited.png] instruction...
//	folio speak [-o speech.wav] text...
//	folio bio   [-width 80] [name...]
//
// Every command accepts:
//
//	-config string   Path to the YAML configuration (default: folio.yaml)
//	-api-key string  API key (overrides the dotenv file and environment)
//	-v               Debug logging
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const usage = `usage: folio <command> [flags] [args]

commands:
  serve   run the HTTP API
  chat    open the terminal chat
  image   generate an image
  edit    edit an image
  speak   synthesize speech to a WAV file
  bio     search the web for a biography`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Env vars are read here and passed down as values.
	e := env{
		getenv: os.Getenv,
		stdout: os.Stdout,
		stderr: os.Stderr,
		studio: newStudio,
	}
	if err := run(ctx, os.Args[1:], e); err != nil {
		fmt.Fprintf(os.Stderr, "folio: %v\n", err)
		os.Exit(1)
	}
}

type command func(ctx context.Context, args []string, e env) error

var commands = map[string]command{
	"serve": serve,
	"chat":  chat,
	"image": image,
	"edit":  edit,
	"speak": speak,
	"bio":   bio,
}

func run(ctx context.Context, args []string, e env) error {
	if len(args) == 0 {
		fmt.Fprintln(e.stderr, usage)
		return fmt.Errorf("no command given")
	}
	name, args := args[0], args[1:]
	if name == "help" || name == "-h" || name == "-help" {
		fmt.Fprintln(e.stdout, usage)
		return nil
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintln(e.stderr, usage)
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd(ctx, args, e)
}

// writeFile is os.WriteFile with the path in the error.
func writeFile(w io.Writer, path string, data []byte, what string) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", what, err)
	}
	fmt.Fprintf(w, "wrote %s (%d bytes)\n", path, len(data))
	return nil
}
