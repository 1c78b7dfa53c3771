// Package ocr extracts text from worksheet photos. Extraction failure is
// never fatal to a conversation: callers fall back to an empty transcript
// and keep the image flag set.
package ocr

import (
	"context"
	"strings"

	"github.com/kotoba-ai/kotoba/internal/llm"
)

// Extractor reads the text out of an image.
type Extractor interface {
	// ExtractText returns the main text visible in the image. An empty
	// string with a nil error means the image carried no readable text.
	ExtractText(ctx context.Context, img llm.Image) (string, error)
}

// LLMExtractor uses a vision-capable model as the OCR engine.
type LLMExtractor struct {
	provider llm.Provider
	cfg      Config
}

// Config holds configuration for the LLM extractor.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults. Transcription wants zero
// creativity.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0,
	}
}

// NewLLMExtractor creates a vision-model-backed extractor.
func NewLLMExtractor(provider llm.Provider, cfg Config) *LLMExtractor {
	return &LLMExtractor{provider: provider, cfg: cfg}
}

const ocrSystemPrompt = `You transcribe text from images of worksheets, textbooks and handwritten notes.

Instructions:
- Return the main body text exactly as written, preserving line breaks.
- Do not correct spelling or grammar errors; the errors are often the point.
- Ignore page furniture: page numbers, headers, watermarks.
- If the image contains no readable text, return an empty string.
- Return only the transcription, no commentary.`

func (e *LLMExtractor) ExtractText(ctx context.Context, img llm.Image) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeOCR)

	req := llm.Request{
		System: ocrSystemPrompt,
		Messages: []llm.Message{
			{
				Role:    llm.RoleUser,
				Content: "Transcribe the text in this image.",
				Image:   &img,
			},
		},
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(resp.Content)), nil
}
