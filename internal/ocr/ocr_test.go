package ocr

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kotoba-ai/kotoba/internal/llm"
)

func testImage() llm.Image {
	return llm.Image{MIMEType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF}}
}

func TestExtractText(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("I have went to school yesterday.\n")},
	)
	e := NewLLMExtractor(mock, DefaultConfig())

	text, err := e.ExtractText(context.Background(), testImage())
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "I have went to school yesterday." {
		t.Errorf("text = %q", text)
	}

	// The image must actually travel with the request.
	if mock.Calls[0].Messages[0].Image == nil {
		t.Fatal("expected image on the LLM request")
	}
	if mock.Calls[0].Messages[0].Image.MIMEType != "image/jpeg" {
		t.Errorf("mime = %q", mock.Calls[0].Messages[0].Image.MIMEType)
	}
}

func TestExtractText_NoReadableText(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("  \n")},
	)
	e := NewLLMExtractor(mock, DefaultConfig())

	text, err := e.ExtractText(context.Background(), testImage())
	if err != nil {
		t.Fatalf("ExtractText failed: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty transcript, got %q", text)
	}
}

func TestExtractText_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider() // Empty queue → ErrProviderUnavailable
	e := NewLLMExtractor(mock, DefaultConfig())

	_, err := e.ExtractText(context.Background(), testImage())
	if err == nil {
		t.Error("expected error from empty mock provider")
	}
}
