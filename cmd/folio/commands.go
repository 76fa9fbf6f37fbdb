package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/fwojciec/folio"
	bt "github.com/fwojciec/folio/bubbletea"
	foliogin "github.com/fwojciec/folio/gin"
	"github.com/fwojciec/folio/markdown"
	"github.com/gin-gonic/gin"
)

func newFlagSet(name string, e env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func serve(ctx context.Context, args []string, e env) error {
	fs := newFlagSet("serve", e)
	c := commonFlags(fs)
	addr := fs.String("addr", "", "Listen address (overrides server.addr)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := c.load(e, e.stderr)
	if err != nil {
		return err
	}
	if *addr != "" {
		a.config.Server.Addr = *addr
	}

	gin.SetMode(gin.ReleaseMode)
	srv := foliogin.NewServer(a.studio,
		foliogin.WithConfig(a.config.Server),
		foliogin.WithPersona(a.persona),
		foliogin.WithLogger(a.logger),
	)
	return srv.ListenAndServe(ctx)
}

func chat(ctx context.Context, args []string, e env) error {
	fs := newFlagSet("chat", e)
	c := commonFlags(fs)
	logPath := fs.String("log", "", "Append logs to this file (default: discard)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// The TUI owns the terminal, so logs never go to stderr here.
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	a, err := c.load(e, logOut)
	if err != nil {
		return err
	}

	conv := folio.NewConversation(a.studio, folio.NewSession(a.persona.Greeting()), folio.WithLogger(a.logger))
	if err := bt.Run(ctx, bt.New(conv, folio.DefaultTheme())); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

func image(ctx context.Context, args []string, e env) error {
	fs := newFlagSet("image", e)
	c := commonFlags(fs)
	size := fs.String("size", string(folio.ImageSize1K), "Resolution: 1K, 2K or 4K")
	ratio := fs.String("ratio", string(folio.AspectRatio1x1), "Aspect ratio, e.g. 16:9")
	out := fs.String("o", "image.png", "Output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := folio.ImageRequest{Prompt: strings.Join(fs.Args(), " ")}
	var err error
	if req.Size, err = folio.ParseImageSize(*size); err != nil {
		return err
	}
	if req.Ratio, err = folio.ParseAspectRatio(*ratio); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	a, err := c.load(e, e.stderr)
	if err != nil {
		return err
	}
	uri, err := a.studio.GenerateImage(ctx, req)
	if err != nil {
		return err
	}
	_, data, err := folio.DecodeDataURI(uri)
	if err != nil {
		return err
	}
	return writeFile(e.stdout, *out, data, "image")
}

func edit(ctx context.Context, args []string, e env) error {
	fs := newFlagSet("edit", e)
	c := commonFlags(fs)
	in := fs.String("i", "", "Source image file (required)")
	out := fs.String("o", "edited.png", "Output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("-i is required: %w", folio.ErrValidation)
	}
	instruction := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if instruction == "" {
		return fmt.Errorf("instruction is empty: %w", folio.ErrValidation)
	}

	src, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("read source image: %w", err)
	}
	uri := "data:" + http.DetectContentType(src) + ";base64," + base64.StdEncoding.EncodeToString(src)

	a, err := c.load(e, e.stderr)
	if err != nil {
		return err
	}
	edited, ok, err := a.studio.EditImage(ctx, uri, instruction)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("the model returned no image")
	}
	_, data, err := folio.DecodeDataURI(edited)
	if err != nil {
		return err
	}
	return writeFile(e.stdout, *out, data, "image")
}

func speak(ctx context.Context, args []string, e env) error {
	fs := newFlagSet("speak", e)
	c := commonFlags(fs)
	out := fs.String("o", "speech.wav", "Output WAV file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		return fmt.Errorf("text is empty: %w", folio.ErrValidation)
	}

	a, err := c.load(e, e.stderr)
	if err != nil {
		return err
	}
	payload, ok, err := a.studio.SynthesizeSpeech(ctx, text)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("the model returned no audio")
	}
	buf, err := folio.DecodeAudio(payload)
	if err != nil {
		return err
	}
	a.logger.Debug("speech decoded", "frames", buf.Frames(), "duration", buf.Duration())
	return writeFile(e.stdout, *out, folio.EncodeWAV(buf), "audio")
}

func bio(ctx context.Context, args []string, e env) error {
	fs := newFlagSet("bio", e)
	c := commonFlags(fs)
	width := fs.Int("width", 80, "Wrap width")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := c.load(e, e.stderr)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if name == "" {
		name = a.persona.Name
	}
	answer, err := a.studio.SearchBio(ctx, name)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, markdown.Render(markdown.WithSources(answer.Text, answer.URLs), *width, folio.DefaultTheme()))
	return nil
}
