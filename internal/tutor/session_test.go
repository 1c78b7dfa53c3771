package tutor

import (
	"context"
	"errors"
	"testing"

	"github.com/kotoba-ai/kotoba/internal/analysis"
	"github.com/kotoba-ai/kotoba/internal/request"
)

func TestSession_InitialState(t *testing.T) {
	sess := NewSession()
	if sess.Status() != StatusAwaitingClassification {
		t.Errorf("status = %s, want awaiting-classification", sess.Status())
	}
	if sess.ID() == "" {
		t.Error("expected a session ID")
	}
	if len(sess.History()) != 0 {
		t.Error("expected empty history")
	}
}

func TestSession_HistoryIsSnapshot(t *testing.T) {
	stub := &stubClassifier{}
	stub.push(clearResult(analysis.CategoryGrammar), nil)
	r := newTestResolver(stub)
	sess := NewSession()

	req, _ := request.Normalize("q", "", false)
	if _, err := r.Submit(context.Background(), sess, req); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	history := sess.History()
	history[0].Request.QueryText = "mutated"

	if sess.History()[0].Request.QueryText != "q" {
		t.Error("mutating the snapshot leaked into the session")
	}
}

func TestSession_Reset(t *testing.T) {
	stub := &stubClassifier{}
	stub.push(ambiguousResult("unclear"), nil)
	stub.push(clearResult(analysis.CategoryOther), nil)
	r := newTestResolver(stub)
	sess := NewSession()

	req, _ := request.Normalize("help", "", false)
	if _, err := r.Submit(context.Background(), sess, req); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	id := sess.ID()

	sess.Reset()
	if sess.Status() != StatusAwaitingClassification {
		t.Errorf("status = %s after reset", sess.Status())
	}
	if len(sess.History()) != 0 {
		t.Error("history should be empty after reset")
	}
	if sess.Rounds() != 0 {
		t.Error("rounds should be zero after reset")
	}
	if sess.ID() != id {
		t.Error("reset should keep the session ID")
	}

	// The session is usable again after reset.
	out, err := r.Submit(context.Background(), sess, req)
	if err != nil {
		t.Fatalf("Submit after reset failed: %v", err)
	}
	if out.Status != StatusResolvedClear {
		t.Errorf("status = %s", out.Status)
	}
}

func TestSession_AbandonIsTerminal(t *testing.T) {
	sess := NewSession()
	sess.Abandon()
	if sess.Status() != StatusAbandoned {
		t.Fatalf("status = %s", sess.Status())
	}
	if !sess.Status().Terminal() {
		t.Error("abandoned should be terminal")
	}

	r := newTestResolver(&stubClassifier{})
	req, _ := request.Normalize("q", "", false)
	_, err := r.Submit(context.Background(), sess, req)
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError on abandoned session, got: %v", err)
	}
}

func TestDispatch_RequiresResolvedClear(t *testing.T) {
	sess := NewSession()
	_, err := Dispatch(sess)
	if !errors.Is(err, ErrNotResolved) {
		t.Fatalf("expected ErrNotResolved, got: %v", err)
	}

	sess.Abandon()
	if _, err := Dispatch(sess); !errors.Is(err, ErrNotResolved) {
		t.Fatalf("expected ErrNotResolved on abandoned session, got: %v", err)
	}
}

func TestDispatch_PackagesFinalTurn(t *testing.T) {
	stub := &stubClassifier{}
	stub.push(ambiguousResult("unclear"), nil)
	stub.push(clearResult(analysis.CategoryGrammar), nil)
	r := newTestResolver(stub)
	sess := NewSession()

	req, _ := request.Normalize("fix this", "I have went.", true)
	if _, err := r.Submit(context.Background(), sess, req); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := r.Reply(context.Background(), sess, "grammar"); err != nil {
		t.Fatalf("Reply failed: %v", err)
	}

	task, err := Dispatch(sess)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if task.Classification.Category != analysis.CategoryGrammar {
		t.Errorf("category = %q", task.Classification.Category)
	}
	if task.Request.QueryText != "fix this\ngrammar" {
		t.Errorf("final request = %q", task.Request.QueryText)
	}
	if len(task.History) != 2 {
		t.Errorf("history length = %d, want 2", len(task.History))
	}
}
