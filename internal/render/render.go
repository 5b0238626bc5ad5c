// Package render is the natural-language boundary. The core always builds
// a templated message; a renderer may rewrite it into friendlier prose but
// must fall back to the template on any trouble.
package render

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
)

// Renderer turns a templated core message into the customer-facing reply
type Renderer interface {
	Polish(ctx context.Context, message string) string
}

// Template passes the core's message through unchanged
type Template struct{}

// Polish returns the message as-is
func (Template) Polish(ctx context.Context, message string) string {
	return message
}

// LLM rewrites replies with a language model. Rendering is best-effort:
// errors, timeouts and empty completions all fall back to the template.
type LLM struct {
	model   llms.Model
	timeout time.Duration
	log     *logrus.Entry
}

// NewLLM creates an LLM-backed renderer
func NewLLM(model llms.Model, timeout time.Duration) *LLM {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &LLM{
		model:   model,
		timeout: timeout,
		log:     logrus.WithField("component", "renderer"),
	}
}

const polishPrompt = "Rewrite the following restaurant assistant reply in a warm, concise voice. " +
	"Keep every fact, number and order id exactly as given. Reply with the rewritten text only.\n\n"

// Polish asks the model for a friendlier phrasing of message
func (r *LLM) Polish(ctx context.Context, message string) string {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := llms.GenerateFromSinglePrompt(ctx, r.model, polishPrompt+message)
	if err != nil {
		r.log.WithError(err).Debug("render fell back to template")
		return message
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return message
	}
	return out
}
