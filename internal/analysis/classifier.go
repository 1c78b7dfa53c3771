package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kotoba-ai/kotoba/internal/llm"
	"github.com/kotoba-ai/kotoba/internal/request"
)

// ClassifierConfig holds configuration for the LLM classifier.
type ClassifierConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultClassifierConfig returns sensible defaults. Temperature stays
// low: classification should be boring.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MaxTokens:   512,
		Temperature: 0.2,
	}
}

// Classifier turns a normalized request into a structured analysis via
// the LLM provider.
type Classifier struct {
	provider llm.Provider
	cfg      ClassifierConfig
}

// NewClassifier creates an LLM-backed classifier.
func NewClassifier(provider llm.Provider, cfg ClassifierConfig) *Classifier {
	return &Classifier{provider: provider, cfg: cfg}
}

// analysisOutput is the raw LLM response.
type analysisOutput struct {
	OCRText            *string `json:"ocr_text"`
	RequestCategory    *string `json:"request_category"`
	Topic              *string `json:"topic"`
	Summary            *string `json:"summary"`
	Ambiguity          *string `json:"ambiguity"`
	ReasonForAmbiguity *string `json:"reason_for_ambiguity"`
}

// Classify sends the request and the prior clarification rounds to the
// model and validates the reply against the closed taxonomy. Returns
// *ParseError when the reply does not parse or omits a required field,
// *CategoryError when the category falls outside the taxonomy. Both are
// recoverable; transport-level failures pass through unchanged.
func (c *Classifier) Classify(ctx context.Context, req request.NormalizedRequest, prior []Exchange) (*Result, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeAnalysis)

	userMsg, err := buildAnalysisMessage(req, prior)
	if err != nil {
		return nil, fmt.Errorf("build analysis prompt: %w", err)
	}

	llmReq := llm.Request{
		System: analysisSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      AnalysisSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, llmReq)
	if err != nil {
		// Schema violations surface as ErrInvalidResponse after the
		// provider's own retry; everything else passes through.
		var invErr *llm.ErrInvalidResponse
		if errors.As(err, &invErr) {
			return nil, &ParseError{Content: string(invErr.Content), Err: err}
		}
		return nil, fmt.Errorf("classification call failed: %w", err)
	}

	var raw analysisOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &ParseError{Content: string(resp.Content), Err: err}
	}

	if raw.RequestCategory == nil || raw.Ambiguity == nil {
		return nil, &ParseError{
			Content: string(resp.Content),
			Err:     errors.New("missing request_category or ambiguity"),
		}
	}

	category, err := ParseCategory(*raw.RequestCategory)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Category: category,
		Topic:    deref(raw.Topic),
		Summary:  deref(raw.Summary),
		OCRText:  deref(raw.OCRText),
		Verdict:  buildVerdict(*raw.Ambiguity, raw.ReasonForAmbiguity),
	}
	return result, nil
}

// buildVerdict repairs the reason/ambiguity coupling. A clear verdict
// drops any stray reason; an ambiguous one without a reason gets a
// diagnostic placeholder. Anything that is not exactly "clear" fails
// toward ambiguous.
func buildVerdict(ambiguity string, reason *string) Verdict {
	switch ambiguity {
	case "clear":
		return ClearVerdict()
	case "ambiguous":
		return AmbiguousVerdict(deref(reason))
	default:
		return AmbiguousVerdict(fmt.Sprintf("unrecognized ambiguity verdict %q", ambiguity))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
