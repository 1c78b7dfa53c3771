package analysis

import "github.com/kotoba-ai/kotoba/internal/llm"

// AnalysisSchema defines the JSON contract for request analysis replies.
// Field names follow the original tutoring prompt so replies stay
// comparable across model upgrades.
var AnalysisSchema = &llm.Schema{
	Name:        "request-analysis",
	Description: "Structured analysis of a language-learning request",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"ocr_text": map[string]any{
				"type":        []any{"string", "null"},
				"description": "Main text read from the attached image, or null when no image",
			},
			"request_category": map[string]any{
				"type": "string",
				"enum": []any{
					"grammar", "vocabulary", "reading-comprehension",
					"composition", "translation-to-native", "syntax-analysis",
					"translation-to-foreign", "correction", "other",
				},
				"description": "The single best-fitting request category",
			},
			"topic": map[string]any{
				"type":        "string",
				"description": "The subject area or concrete content of the request",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "One-sentence restatement of the core question or task",
			},
			"ambiguity": map[string]any{
				"type":        "string",
				"enum":        []any{"clear", "ambiguous"},
				"description": "Whether the request can be answered directly or needs a clarifying question first",
			},
			"reason_for_ambiguity": map[string]any{
				"type":        []any{"string", "null"},
				"description": "Why clarification is needed; null when the request is clear",
			},
		},
		"required": []any{
			"ocr_text", "request_category", "topic", "summary",
			"ambiguity", "reason_for_ambiguity",
		},
		"additionalProperties": false,
	},
}
