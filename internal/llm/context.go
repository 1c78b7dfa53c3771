package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// Purpose labels used by Kotoba's LLM consumers. Attached to the request
// context so the event log can attribute token usage per feature.
const (
	PurposeAnalysis = "analysis" // request classification
	PurposeClarify  = "clarify"  // clarification question generation
	PurposeOCR      = "ocr"      // text extraction from images
	PurposeExplain  = "explain"  // explanation generation
	PurposeFollowup = "followup" // follow-up responses
	PurposeSummary  = "summary"  // session summaries
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
