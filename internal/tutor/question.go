package tutor

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/kotoba-ai/kotoba/internal/analysis"
	"github.com/kotoba-ai/kotoba/internal/llm"
	"github.com/kotoba-ai/kotoba/internal/request"
)

const clarifySystemPrompt = `You are a friendly English tutor. A learner's request was judged too ambiguous to answer directly. Ask exactly one short clarifying question that would let you answer it.

Instructions:
- Ask about the specific gap described in the ambiguity reason, nothing else.
- One question, one sentence where possible, no preamble.
- Offer concrete options when the gap is a choice (e.g. "grammar or word choice?").
- Never answer the request itself yet.`

var clarifyUserTemplate = template.Must(template.New("clarify").Parse(`Learner request: {{.Query}}
{{- if .OCRText}}
Text from their image: {{.OCRText}}
{{- end}}
Topic: {{if .Topic}}{{.Topic}}{{else}}(unknown){{end}}
Why it is ambiguous: {{.Reason}}`))

// clarificationQuestion asks the model for a clarifying question derived
// from the ambiguity reason and topic. Any failure falls back to a
// static question so a clarification round is never lost to an LLM
// hiccup.
func (r *Resolver) clarificationQuestion(ctx context.Context, req request.NormalizedRequest, result *analysis.Result) string {
	if r.provider == nil {
		return staticClarificationQuestion(result)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeClarify)

	var buf bytes.Buffer
	err := clarifyUserTemplate.Execute(&buf, struct {
		Query, OCRText, Topic, Reason string
	}{
		Query:   req.QueryText,
		OCRText: req.OCRText,
		Topic:   result.Topic,
		Reason:  result.Verdict.Reason(),
	})
	if err != nil {
		return staticClarificationQuestion(result)
	}

	resp, err := r.provider.Generate(ctx, llm.Request{
		System: clarifySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buf.String()},
		},
		MaxTokens:   r.cfg.QuestionMaxTokens,
		Temperature: r.cfg.QuestionTemperature,
	})
	if err != nil {
		return staticClarificationQuestion(result)
	}

	question := strings.TrimSpace(string(resp.Content))
	if question == "" {
		return staticClarificationQuestion(result)
	}
	return question
}

// staticClarificationQuestion is the deterministic fallback.
func staticClarificationQuestion(result *analysis.Result) string {
	reason := result.Verdict.Reason()
	if reason == "" {
		return "Could you tell me a bit more about what you'd like me to explain?"
	}
	return fmt.Sprintf("I want to be sure I help with the right thing (%s). Could you say a bit more about what you'd like me to focus on?", reason)
}
