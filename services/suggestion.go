package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"checksync/model"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
)

var ErrNoGenerator = errors.New("suggestions are not configured")

const generateTimeout = 30 * time.Second

// Generator turns a prompt into the raw text the model answered with.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Suggestion struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Priority    model.Priority `json:"priority" validate:"required,oneof=low medium high"`
}

// Suggester asks a Generator for a checklist outline. It never fails: any
// problem is logged and yields an empty list.
type Suggester struct {
	gen      Generator
	validate *validator.Validate
	sf       singleflight.Group
	log      *slog.Logger
}

// NewSuggester creates a Suggester. If gen is nil every call returns an
// empty list.
func NewSuggester(gen Generator, log *slog.Logger) *Suggester {
	if log == nil {
		log = slog.Default()
	}
	return &Suggester{gen: gen, validate: validator.New(), log: log}
}

func (s *Suggester) Suggest(ctx context.Context, title, description string) []Suggestion {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	// The shared call outlives any single caller; each caller stops
	// waiting when its own ctx ends.
	key := title + "\x00" + description
	res := s.sf.DoChan(key, func() (interface{}, error) {
		genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), generateTimeout)
		defer cancel()
		return s.generate(genCtx, title, description)
	})

	select {
	case <-ctx.Done():
		s.log.Warn("suggestion abandoned", "title", title, "err", ctx.Err())
		return []Suggestion{}
	case r := <-res:
		if r.Err != nil {
			s.log.Warn("suggestion failed", "title", title, "err", r.Err)
			return []Suggestion{}
		}
		return r.Val.([]Suggestion)
	}
}

func (s *Suggester) generate(ctx context.Context, title, description string) ([]Suggestion, error) {
	if s.gen == nil {
		return nil, ErrNoGenerator
	}
	text, err := s.gen.Generate(ctx, Prompt(title, description))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return []Suggestion{}, nil
	}

	var out []Suggestion
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("decode answer: %w", err)
	}
	for i := range out {
		out[i].Title = strings.TrimSpace(out[i].Title)
		if err := s.validate.Struct(out[i]); err != nil {
			return nil, fmt.Errorf("suggestion %d: %w", i, err)
		}
	}
	if out == nil {
		out = []Suggestion{}
	}
	return out, nil
}

// Prompt builds the request sent to the model.
func Prompt(title, description string) string {
	if description == "" {
		description = "General professional task"
	}
	return fmt.Sprintf(`Generate a professional checklist for the topic: %q.
Context: %s.
Provide a list of detailed, actionable tasks including a title, suggested priority (low, medium, high), and a brief description for each task.`,
		title, description)
}
