package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"checksync/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	text   string
	err    error
	delay  time.Duration
	calls  atomic.Int32
	prompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	f.prompt = prompt
	time.Sleep(f.delay)
	return f.text, f.err
}

func TestSuggest(t *testing.T) {
	gen := &fakeGenerator{text: `[
		{"title": "Book venue", "description": "Shortlist three", "priority": "high"},
		{"title": "Send invites", "description": "", "priority": "low"}
	]`}
	s := NewSuggester(gen, nil)

	got := s.Suggest(context.Background(), "Team offsite", "")
	require.Len(t, got, 2)
	assert.Equal(t, "Book venue", got[0].Title)
	assert.Equal(t, model.PriorityHigh, got[0].Priority)
	assert.Contains(t, gen.prompt, `"Team offsite"`)
	assert.Contains(t, gen.prompt, "Context: General professional task.")
}

func TestSuggestDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		gen  Generator
	}{
		{"no generator", nil},
		{"generator error", &fakeGenerator{err: errors.New("quota exceeded")}},
		{"empty answer", &fakeGenerator{text: "  "}},
		{"malformed json", &fakeGenerator{text: `[{"title": "x"`}},
		{"not an array", &fakeGenerator{text: `{"title": "x", "priority": "low"}`}},
		{"bad priority", &fakeGenerator{text: `[{"title": "x", "priority": "urgent"}]`}},
		{"missing title", &fakeGenerator{text: `[{"title": " ", "priority": "low"}]`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewSuggester(tt.gen, nil).Suggest(context.Background(), "Launch", "web")
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestSuggestCollapsesConcurrentCalls(t *testing.T) {
	gen := &fakeGenerator{text: `[{"title": "a", "priority": "medium"}]`, delay: 50 * time.Millisecond}
	s := NewSuggester(gen, nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, s.Suggest(context.Background(), "same", "topic"), 1)
		}()
	}
	wg.Wait()
	assert.Less(t, gen.calls.Load(), int32(5))
}

func TestPrompt(t *testing.T) {
	p := Prompt("Audit", "Quarterly review")
	assert.Contains(t, p, `topic: "Audit"`)
	assert.Contains(t, p, "Context: Quarterly review.")
	assert.Contains(t, p, "priority (low, medium, high)")
}

// gatedGenerator blocks until release is closed and then honours ctx.
type gatedGenerator struct {
	started chan struct{}
	release chan struct{}
	text    string
}

func (g *gatedGenerator) Generate(ctx context.Context, _ string) (string, error) {
	select {
	case g.started <- struct{}{}:
	default:
	}
	<-g.release
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.text, nil
}

func TestSuggestSurvivesFirstCallerCancel(t *testing.T) {
	gen := &gatedGenerator{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		text:    `[{"title": "a", "priority": "medium"}]`,
	}
	s := NewSuggester(gen, nil)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan []Suggestion, 1)
	go func() { first <- s.Suggest(ctx, "same", "topic") }()
	<-gen.started

	second := make(chan []Suggestion, 1)
	go func() { second <- s.Suggest(context.Background(), "same", "topic") }()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.Empty(t, <-first, "a cancelled caller stops waiting")

	close(gen.release)
	assert.Len(t, <-second, 1, "the shared call is not cancelled with its first caller")
}
