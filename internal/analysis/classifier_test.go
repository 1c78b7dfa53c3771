package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/kotoba-ai/kotoba/internal/llm"
	"github.com/kotoba-ai/kotoba/internal/request"
)

func clearResponse() json.RawMessage {
	return json.RawMessage(`{
		"ocr_text": null,
		"request_category": "vocabulary",
		"topic": "conjunctive adverbs",
		"summary": "Explain the meaning of 'however'",
		"ambiguity": "clear",
		"reason_for_ambiguity": null
	}`)
}

func TestClassify_ClearVerdict(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: clearResponse()})
	c := NewClassifier(mock, DefaultClassifierConfig())

	req, _ := request.Normalize("What does 'however' mean?", "", false)
	result, err := c.Classify(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if result.Category != CategoryVocabulary {
		t.Errorf("category = %q, want %q", result.Category, CategoryVocabulary)
	}
	if result.Verdict.IsAmbiguous() {
		t.Error("expected clear verdict")
	}
	if result.Verdict.Reason() != "" {
		t.Errorf("clear verdict carries reason %q", result.Verdict.Reason())
	}
}

func TestClassify_AmbiguousVerdict(t *testing.T) {
	resp := json.RawMessage(`{
		"ocr_text": "I have went to school yesterday.",
		"request_category": "correction",
		"topic": "past tense",
		"summary": "Fix the transcribed sentence",
		"ambiguity": "ambiguous",
		"reason_for_ambiguity": "target error type unspecified"
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	c := NewClassifier(mock, DefaultClassifierConfig())

	req, _ := request.Normalize("fix this", "I have went to school yesterday.", true)
	result, err := c.Classify(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !result.Verdict.IsAmbiguous() {
		t.Fatal("expected ambiguous verdict")
	}
	if result.Verdict.Reason() != "target error type unspecified" {
		t.Errorf("reason = %q", result.Verdict.Reason())
	}
	if result.OCRText != "I have went to school yesterday." {
		t.Errorf("ocr_text = %q", result.OCRText)
	}
}

func TestClassify_StrayReasonDropped(t *testing.T) {
	// Clear verdict with a leftover reason: the coupling repair drops it.
	resp := json.RawMessage(`{
		"ocr_text": null,
		"request_category": "grammar",
		"topic": "articles",
		"summary": "Explain article usage",
		"ambiguity": "clear",
		"reason_for_ambiguity": "stale reason"
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	c := NewClassifier(mock, DefaultClassifierConfig())

	req, _ := request.Normalize("a vs the?", "", false)
	result, err := c.Classify(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if result.Verdict.IsAmbiguous() || result.Verdict.Reason() != "" {
		t.Errorf("verdict = %v, want clear with no reason", result.Verdict)
	}
}

func TestClassify_MissingReasonRepaired(t *testing.T) {
	resp := json.RawMessage(`{
		"ocr_text": null,
		"request_category": "other",
		"topic": "",
		"summary": "",
		"ambiguity": "ambiguous",
		"reason_for_ambiguity": null
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	c := NewClassifier(mock, DefaultClassifierConfig())

	req, _ := request.Normalize("help", "", false)
	result, err := c.Classify(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !result.Verdict.IsAmbiguous() {
		t.Fatal("expected ambiguous verdict")
	}
	if result.Verdict.Reason() == "" {
		t.Error("ambiguous verdict must carry a reason after repair")
	}
}

func TestClassify_MalformedVerdictFailsTowardAmbiguous(t *testing.T) {
	resp := json.RawMessage(`{
		"ocr_text": null,
		"request_category": "grammar",
		"topic": "t",
		"summary": "s",
		"ambiguity": "maybe",
		"reason_for_ambiguity": null
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	c := NewClassifier(mock, DefaultClassifierConfig())

	req, _ := request.Normalize("q", "", false)
	result, err := c.Classify(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !result.Verdict.IsAmbiguous() {
		t.Error("malformed verdict should fail toward ambiguous")
	}
	if !strings.Contains(result.Verdict.Reason(), "maybe") {
		t.Errorf("reason should be diagnostic, got %q", result.Verdict.Reason())
	}
}

func TestClassify_UnknownCategory(t *testing.T) {
	resp := json.RawMessage(`{
		"ocr_text": null,
		"request_category": "pronunciation",
		"topic": "t",
		"summary": "s",
		"ambiguity": "clear",
		"reason_for_ambiguity": null
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: resp})
	c := NewClassifier(mock, DefaultClassifierConfig())

	req, _ := request.Normalize("q", "", false)
	_, err := c.Classify(context.Background(), req, nil)
	var catErr *CategoryError
	if !errors.As(err, &catErr) {
		t.Fatalf("expected CategoryError, got: %v", err)
	}
	if catErr.Value != "pronunciation" {
		t.Errorf("value = %q", catErr.Value)
	}
}

func TestClassify_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json at all`)})
	c := NewClassifier(mock, DefaultClassifierConfig())

	req, _ := request.Normalize("q", "", false)
	_, err := c.Classify(context.Background(), req, nil)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got: %v", err)
	}
}

func TestClassify_MissingRequiredField(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"topic":"t"}`)})
	c := NewClassifier(mock, DefaultClassifierConfig())

	req, _ := request.Normalize("q", "", false)
	_, err := c.Classify(context.Background(), req, nil)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got: %v", err)
	}
}

func TestClassify_InvalidResponseBecomesParseError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Content: json.RawMessage(`{}`), Err: errors.New("schema violation")},
	})
	c := NewClassifier(mock, DefaultClassifierConfig())

	req, _ := request.Normalize("q", "", false)
	_, err := c.Classify(context.Background(), req, nil)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got: %v", err)
	}
}

func TestClassify_PromptIsDeterministic(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: clearResponse()},
		llm.MockResponse{Content: clearResponse()},
	)
	c := NewClassifier(mock, DefaultClassifierConfig())

	req, _ := request.Normalize("fix this", "I have went to school.", true)
	prior := []Exchange{
		{
			Request:  req,
			Result:   Result{Category: CategoryCorrection, Verdict: AmbiguousVerdict("target error type unspecified")},
			Question: "Should I focus on grammar or word choice?",
			Reply:    "grammar only",
		},
	}

	if _, err := c.Classify(context.Background(), req, prior); err != nil {
		t.Fatalf("first classify: %v", err)
	}
	if _, err := c.Classify(context.Background(), req, prior); err != nil {
		t.Fatalf("second classify: %v", err)
	}

	first := mock.Calls[0].Messages[0].Content
	second := mock.Calls[1].Messages[0].Content
	if first != second {
		t.Errorf("prompts differ:\n%s\n---\n%s", first, second)
	}
}

func TestBuildAnalysisMessage_IncludesHistory(t *testing.T) {
	req, _ := request.Normalize("fix this\ngrammar only", "I have went to school.", true)
	prior := []Exchange{
		{
			Request:  request.NormalizedRequest{QueryText: "fix this", OCRText: "I have went to school.", HasImage: true},
			Result:   Result{Category: CategoryCorrection, Verdict: AmbiguousVerdict("target error type unspecified")},
			Question: "Should I focus on grammar or word choice?",
			Reply:    "grammar only",
		},
	}

	msg, err := buildAnalysisMessage(req, prior)
	if err != nil {
		t.Fatalf("buildAnalysisMessage failed: %v", err)
	}
	for _, want := range []string{
		"fix this",
		"I have went to school.",
		"target error type unspecified",
		"grammar only",
		"Should I focus on grammar or word choice?",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildAnalysisMessage_ImageWithoutOCR(t *testing.T) {
	req := request.NormalizedRequest{QueryText: "what does this say", HasImage: true}
	msg, err := buildAnalysisMessage(req, nil)
	if err != nil {
		t.Fatalf("buildAnalysisMessage failed: %v", err)
	}
	if !strings.Contains(msg, "no text could be read") {
		t.Errorf("message should note the unreadable image:\n%s", msg)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		if err != nil {
			t.Errorf("ParseCategory(%q): %v", c, err)
		}
		if got != c {
			t.Errorf("ParseCategory(%q) = %q", c, got)
		}
	}

	if _, err := ParseCategory("Grammar"); err == nil {
		t.Error("category matching should be exact, not case-folded")
	}
}
