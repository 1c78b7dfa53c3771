package explain

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kotoba-ai/kotoba/internal/analysis"
	"github.com/kotoba-ai/kotoba/internal/llm"
	"github.com/kotoba-ai/kotoba/internal/request"
	"github.com/kotoba-ai/kotoba/internal/tutor"
)

func testTask() *tutor.ExplanationTask {
	return &tutor.ExplanationTask{
		SessionID: "s-1",
		Request: request.NormalizedRequest{
			QueryText: "fix this\ngrammar only",
			OCRText:   "I have went to school yesterday.",
			HasImage:  true,
		},
		Classification: analysis.Result{
			Category: analysis.CategoryGrammar,
			Topic:    "past tense",
			Summary:  "Correct the tense error in the transcribed sentence",
			Verdict:  analysis.ClearVerdict(),
		},
		History: []tutor.Turn{
			{
				Number:   1,
				Question: "Should I focus on grammar or word choice?",
				Reply:    "grammar only",
			},
		},
	}
}

func TestExplain(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("The sentence should be 'I went to school yesterday.'")},
	)
	s := NewService(mock, DefaultConfig())

	text, err := s.Explain(context.Background(), testTask(), StyleDetailed)
	if err != nil {
		t.Fatalf("Explain failed: %v", err)
	}
	if text == "" {
		t.Fatal("expected explanation text")
	}

	prompt := mock.Calls[0].Messages[0].Content
	for _, want := range []string{
		"grammar",
		"past tense",
		"I have went to school yesterday.",
		"grammar only",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestExplain_StyleChangesSystemPrompt(t *testing.T) {
	for _, style := range []Style{StyleDetailed, StyleSimple, StyleSocratic} {
		mock := llm.NewMockProvider(
			llm.MockResponse{Content: json.RawMessage("ok")},
		)
		s := NewService(mock, DefaultConfig())
		if _, err := s.Explain(context.Background(), testTask(), style); err != nil {
			t.Fatalf("Explain(%s) failed: %v", style, err)
		}
		sys := mock.Calls[0].System
		switch style {
		case StyleSimple:
			if !strings.Contains(sys, "short and simple") {
				t.Errorf("simple style not reflected in system prompt")
			}
		case StyleSocratic:
			if !strings.Contains(sys, "Socratic") {
				t.Errorf("socratic style not reflected in system prompt")
			}
		default:
			if !strings.Contains(sys, "detailed") {
				t.Errorf("detailed style not reflected in system prompt")
			}
		}
	}
}

func TestFollowup(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("Yes, 'yesterday' forces the simple past.")},
	)
	s := NewService(mock, DefaultConfig())

	transcript := []Message{
		{Role: "learner", Content: "fix this"},
		{Role: "tutor", Content: "Use 'went', not 'have went'."},
	}
	text, err := s.Followup(context.Background(), transcript, "Why not present perfect?")
	if err != nil {
		t.Fatalf("Followup failed: %v", err)
	}
	if text == "" {
		t.Fatal("expected followup text")
	}

	prompt := mock.Calls[0].Messages[0].Content
	if !strings.Contains(prompt, "Why not present perfect?") {
		t.Errorf("prompt missing the follow-up question:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Use 'went', not 'have went'.") {
		t.Errorf("prompt missing earlier transcript:\n%s", prompt)
	}
}

func TestSummarize_EmptyTranscript(t *testing.T) {
	s := NewService(llm.NewMockProvider(), DefaultConfig())
	if _, err := s.Summarize(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestParseStyle(t *testing.T) {
	if _, err := ParseStyle("detailed"); err != nil {
		t.Errorf("detailed should parse: %v", err)
	}
	if _, err := ParseStyle("verbose"); err == nil {
		t.Error("unknown style should be rejected")
	}
}
