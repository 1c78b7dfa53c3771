// Package explain turns a resolved request into tutoring output: the
// explanation itself, follow-up answers, and an end-of-session summary.
package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/kotoba-ai/kotoba/internal/llm"
	"github.com/kotoba-ai/kotoba/internal/tutor"
)

// Style selects the register of a generated explanation.
type Style string

const (
	// StyleDetailed is a thorough explanation with examples. Default.
	StyleDetailed Style = "detailed"

	// StyleSimple is a short, plain-language explanation.
	StyleSimple Style = "simple"

	// StyleSocratic leads the learner with guiding questions.
	StyleSocratic Style = "socratic"
)

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleDetailed, StyleSimple, StyleSocratic:
		return Style(s), nil
	}
	return "", fmt.Errorf("unknown explanation style %q (detailed, simple, socratic)", s)
}

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// Message is one entry of the conversation transcript as shown to the
// learner. Kept separate from llm.Message: this is UI history, not a
// provider payload.
type Message struct {
	Role    string // "learner" or "tutor"
	Content string
}

// Service generates explanations from dispatched tasks.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an explanation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Explain generates the main explanation for a resolved request.
func (s *Service) Explain(ctx context.Context, task *tutor.ExplanationTask, style Style) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: explainSystemPrompt(style),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildExplainMessage(task)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("explanation generation: %w", err)
	}

	return strings.TrimSpace(string(resp.Content)), nil
}

// Followup answers a learner question asked after the explanation,
// grounded in the conversation so far.
func (s *Service) Followup(ctx context.Context, transcript []Message, latest string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFollowup)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: followupSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildFollowupMessage(transcript, latest)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("followup generation: %w", err)
	}

	return strings.TrimSpace(string(resp.Content)), nil
}

// Summarize condenses the whole conversation for the learner to keep.
func (s *Service) Summarize(ctx context.Context, transcript []Message) (string, error) {
	if len(transcript) == 0 {
		return "", fmt.Errorf("nothing to summarize: empty conversation")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeSummary)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: summarySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildSummaryMessage(transcript)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("summary generation: %w", err)
	}

	return strings.TrimSpace(string(resp.Content)), nil
}
