package gin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fwojciec/folio"
	foliojson "github.com/fwojciec/folio/json"
	"github.com/fwojciec/folio/markdown"
	"github.com/gin-gonic/gin"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

func (s *Server) createSession(c *gin.Context) {
	session := folio.NewSession(s.persona.Greeting())
	conv := folio.NewConversation(s.studio, session, folio.WithLogger(s.logger))
	s.store.Add(conv)
	c.JSON(http.StatusCreated, foliojson.NewSession(conv.Snapshot(), false))
}

func (s *Server) getSession(c *gin.Context) {
	conv, err := s.store.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, foliojson.NewSession(conv.Snapshot(), conv.Busy()))
}

func (s *Server) sendMessage(c *gin.Context) {
	conv, err := s.store.Get(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	var body foliojson.SendRequest
	if !bind(c, &body) {
		return
	}
	// The turn outlives a disconnected client so the session stays consistent.
	msg, err := conv.Send(context.WithoutCancel(c.Request.Context()), body.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, foliojson.Turn{
		Reply:   foliojson.NewMessage(msg),
		Session: foliojson.NewSession(conv.Snapshot(), conv.Busy()),
	})
}

func (s *Server) generateImage(c *gin.Context) {
	var body foliojson.ImageRequest
	if !bind(c, &body) {
		return
	}
	req, err := body.Domain()
	if err != nil {
		fail(c, err)
		return
	}
	uri, err := s.studio.GenerateImage(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, foliojson.Image{Image: uri})
}

func (s *Server) editImage(c *gin.Context) {
	var body foliojson.EditRequest
	if !bind(c, &body) {
		return
	}
	uri, ok, err := s.studio.EditImage(c.Request.Context(), body.Image, body.Instruction)
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, foliojson.Image{Image: uri})
}

func (s *Server) synthesizeSpeech(c *gin.Context) {
	var body foliojson.SpeechRequest
	if !bind(c, &body) {
		return
	}
	payload, ok, err := s.studio.SynthesizeSpeech(c.Request.Context(), body.Text)
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	buf, err := folio.DecodeAudio(payload)
	if err != nil {
		fail(c, fmt.Errorf("decode synthesized audio: %v: %w", err, folio.ErrGeneration))
		return
	}
	if c.Query("format") == "pcm" {
		c.JSON(http.StatusOK, foliojson.NewSpeech(payload, buf))
		return
	}
	c.Data(http.StatusOK, "audio/wav", folio.EncodeWAV(buf))
}

func (s *Server) searchBio(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		name = s.persona.Name
	}
	answer, err := s.studio.SearchBio(c.Request.Context(), name)
	if err != nil {
		fail(c, err)
		return
	}
	html, err := markdown.HTML(answer.Text)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, foliojson.NewBio(answer, html))
}

// bind decodes the JSON body into dst and writes the error response when
// that fails.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, err)
			return false
		}
		fail(c, fmt.Errorf("invalid request body: %v: %w", err, folio.ErrValidation))
		return false
	}
	return true
}

// fail maps err to a status code and writes a JSON error body.
func fail(c *gin.Context, err error) {
	status := statusOf(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, foliojson.Error{Error: message(status, err)})
}

func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, folio.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, folio.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, folio.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, folio.ErrTransport), errors.Is(err, folio.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// message hides provider and internal details from clients.
func message(status int, err error) string {
	switch status {
	case http.StatusBadGateway:
		if errors.Is(err, folio.ErrGeneration) {
			return "the model did not return a usable result"
		}
		return "the model provider is unavailable"
	case http.StatusInternalServerError:
		return http.StatusText(status)
	default:
		return err.Error()
	}
}
