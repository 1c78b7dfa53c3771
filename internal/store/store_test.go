package store

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Client() == nil {
		t.Fatal("expected non-nil ent client")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLLMEventAppendAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.0-flash",
		Purpose:      "analysis",
		InputTokens:  120,
		OutputTokens: 40,
		LatencyMs:    850,
		Success:      true,
		RequestBody:  "[user]\nfix this sentence",
		ResponseBody: `{"request_category":"correction"}`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Purpose != "analysis" {
		t.Errorf("purpose = %q, want 'analysis'", events[0].Purpose)
	}
	if events[0].Sequence != 1 {
		t.Errorf("sequence = %d, want 1", events[0].Sequence)
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil {
		t.Fatal("expected non-nil event")
	}
	if e.ResponseBody != `{"request_category":"correction"}` {
		t.Errorf("unexpected response body: %q", e.ResponseBody)
	}
}

func TestGetLLMEventNotFound(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()

	e, err := repo.GetLLMEvent(context.Background(), 9999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e != nil {
		t.Fatal("expected nil for missing event")
	}
}

func TestQueryLLMEventsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: "analysis", Success: true,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("expected newest first, got sequences %d, %d",
			events[0].Sequence, events[1].Sequence)
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appends := []LLMRequestEventData{
		{Provider: "mock", Model: "m", Purpose: "analysis", InputTokens: 100, OutputTokens: 20, LatencyMs: 400, Success: true},
		{Provider: "mock", Model: "m", Purpose: "analysis", InputTokens: 200, OutputTokens: 40, LatencyMs: 600, Success: true},
		{Provider: "mock", Model: "m", Purpose: "explain", InputTokens: 50, OutputTokens: 300, LatencyMs: 900, Success: true},
	}
	for i, d := range appends {
		if err := repo.AppendLLMRequest(ctx, d); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(stats))
	}

	// Sorted by purpose: analysis before explain.
	if stats[0].Purpose != "analysis" || stats[0].Calls != 2 {
		t.Errorf("analysis stat = %+v", stats[0])
	}
	if stats[0].InputTokens != 300 || stats[0].OutputTokens != 60 {
		t.Errorf("analysis tokens = %d in / %d out", stats[0].InputTokens, stats[0].OutputTokens)
	}
	if stats[0].AvgLatencyMs != 500 {
		t.Errorf("analysis avg latency = %d, want 500", stats[0].AvgLatencyMs)
	}
	if stats[1].Purpose != "explain" || stats[1].Calls != 1 {
		t.Errorf("explain stat = %+v", stats[1])
	}
}

func TestAnalysisEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendAnalysis(ctx, AnalysisEventData{
		SessionID:       "s-1",
		Turn:            1,
		Round:           0,
		Category:        "correction",
		Topic:           "past tense",
		Summary:         "Learner wants the sentence corrected",
		Ambiguous:       true,
		AmbiguityReason: "unclear whether grammar or word choice",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	err = repo.AppendAnalysis(ctx, AnalysisEventData{
		SessionID: "s-1",
		Turn:      1,
		Round:     1,
		Category:  "grammar",
		Topic:     "past tense",
		Ambiguous: false,
	})
	if err != nil {
		t.Fatalf("append round 1: %v", err)
	}

	events, err := repo.QueryAnalyses(ctx, QueryOpts{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// Oldest first: round 0 precedes round 1.
	if events[0].Round != 0 || !events[0].Ambiguous {
		t.Errorf("first event = %+v", events[0].AnalysisEventData)
	}
	if events[0].AmbiguityReason == "" {
		t.Error("expected ambiguity reason on ambiguous verdict")
	}
	if events[1].Round != 1 || events[1].Ambiguous {
		t.Errorf("second event = %+v", events[1].AnalysisEventData)
	}
}

func TestSessionEventFilterBySession(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, d := range []SessionEventData{
		{SessionID: "s-1", Action: "request", Turn: 1},
		{SessionID: "s-1", Action: "resolve", Turn: 1, Rounds: 0, Category: "grammar", Topic: "articles"},
		{SessionID: "s-2", Action: "request", Turn: 1},
	} {
		if err := repo.AppendSessionEvent(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QuerySessionEvents(ctx, QueryOpts{SessionID: "s-1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events for s-1, got %d", len(events))
	}
	if events[1].Action != "resolve" || events[1].Category != "grammar" {
		t.Errorf("resolve event = %+v", events[1].SessionEventData)
	}
}

func TestWipe(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Purpose: "analysis", Success: true}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s-1", Action: "request"}); err != nil {
		t.Fatalf("append session: %v", err)
	}

	if err := s.Wipe(ctx); err != nil {
		t.Fatalf("wipe: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query llm: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected 0 llm events after wipe, got %d", len(events))
	}

	// Sequences keep increasing after a wipe.
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s-1", Action: "request"}); err != nil {
		t.Fatalf("append after wipe: %v", err)
	}
	sev, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query session: %v", err)
	}
	if len(sev) != 1 {
		t.Fatalf("expected 1 session event, got %d", len(sev))
	}
	if sev[0].Sequence <= 2 {
		t.Errorf("sequence = %d, want > 2", sev[0].Sequence)
	}
}
