package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/kotoba-ai/kotoba/internal/analysis"
	"github.com/kotoba-ai/kotoba/internal/llm"
	"github.com/kotoba-ai/kotoba/internal/request"
	"github.com/kotoba-ai/kotoba/internal/store"
)

// stubClassifier replays canned verdicts and records what it was asked.
type stubClassifier struct {
	mu        sync.Mutex
	results   []*analysis.Result
	errs      []error
	calls     int
	lastPrior []analysis.Exchange
	block     chan struct{} // when non-nil, Classify waits on it
}

func (s *stubClassifier) push(result *analysis.Result, err error) {
	s.results = append(s.results, result)
	s.errs = append(s.errs, err)
}

func (s *stubClassifier) Classify(ctx context.Context, req request.NormalizedRequest, prior []analysis.Exchange) (*analysis.Result, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls >= len(s.results) {
		return nil, errors.New("stub exhausted")
	}
	i := s.calls
	s.calls++
	s.lastPrior = prior
	return s.results[i], s.errs[i]
}

func clearResult(cat analysis.Category) *analysis.Result {
	return &analysis.Result{
		Category: cat,
		Topic:    "test topic",
		Summary:  "test summary",
		Verdict:  analysis.ClearVerdict(),
	}
}

func ambiguousResult(reason string) *analysis.Result {
	return &analysis.Result{
		Category: analysis.CategoryCorrection,
		Topic:    "past tense",
		Verdict:  analysis.AmbiguousVerdict(reason),
	}
}

func newTestResolver(c Classifier) *Resolver {
	return NewResolver(c, nil, nil, DefaultResolverConfig())
}

func TestResolver_ClearRequestResolvesDirectly(t *testing.T) {
	stub := &stubClassifier{}
	stub.push(clearResult(analysis.CategoryVocabulary), nil)
	r := newTestResolver(stub)
	sess := NewSession()

	req, _ := request.Normalize("What does 'however' mean?", "", false)
	out, err := r.Submit(context.Background(), sess, req)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if out.Status != StatusResolvedClear {
		t.Fatalf("status = %s, want resolved-clear", out.Status)
	}
	if out.Task == nil {
		t.Fatal("expected a dispatched task")
	}
	if out.Task.Classification.Category != analysis.CategoryVocabulary {
		t.Errorf("task category = %q", out.Task.Classification.Category)
	}

	// Dispatch on the resolved session also succeeds.
	task, err := Dispatch(sess)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if task.SessionID != sess.ID() {
		t.Errorf("task session = %q, want %q", task.SessionID, sess.ID())
	}
}

func TestResolver_AmbiguousRequestAsksQuestion(t *testing.T) {
	stub := &stubClassifier{}
	stub.push(ambiguousResult("target error type unspecified"), nil)
	r := newTestResolver(stub)
	sess := NewSession()

	req, _ := request.Normalize("fix this", "I have went to school yesterday.", true)
	out, err := r.Submit(context.Background(), sess, req)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if out.Status != StatusAwaitingClarificationReply {
		t.Fatalf("status = %s, want awaiting-clarification-reply", out.Status)
	}
	if out.Question == "" {
		t.Fatal("expected a clarification question")
	}
	if !strings.Contains(out.Question, "target error type unspecified") {
		t.Errorf("static fallback question should carry the reason, got %q", out.Question)
	}
	if sess.Rounds() != 1 {
		t.Errorf("rounds = %d, want 1", sess.Rounds())
	}
}

func TestResolver_ReplyResolvesWithHistory(t *testing.T) {
	stub := &stubClassifier{}
	stub.push(ambiguousResult("target error type unspecified"), nil)
	stub.push(clearResult(analysis.CategoryGrammar), nil)
	r := newTestResolver(stub)
	sess := NewSession()

	req, _ := request.Normalize("fix this", "I have went to school yesterday.", true)
	if _, err := r.Submit(context.Background(), sess, req); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	out, err := r.Reply(context.Background(), sess, "grammar only")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if out.Status != StatusResolvedClear {
		t.Fatalf("status = %s, want resolved-clear", out.Status)
	}

	// Resolved after exactly 2 turns.
	history := sess.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[1].Request.QueryText != "fix this\ngrammar only" {
		t.Errorf("folded query = %q", history[1].Request.QueryText)
	}
	if history[1].Request.OCRText == "" {
		t.Error("OCR text should carry across the clarification round")
	}

	// The re-classification saw the earlier round.
	if len(stub.lastPrior) != 1 {
		t.Fatalf("prior length = %d, want 1", len(stub.lastPrior))
	}
	if stub.lastPrior[0].Reply != "grammar only" {
		t.Errorf("prior reply = %q", stub.lastPrior[0].Reply)
	}
}

func TestResolver_RoundCapAbandons(t *testing.T) {
	stub := &stubClassifier{}
	for i := 0; i < 4; i++ {
		stub.push(ambiguousResult("still unclear"), nil)
	}
	r := newTestResolver(stub)
	sess := NewSession()

	req, _ := request.Normalize("help", "", false)
	if _, err := r.Submit(context.Background(), sess, req); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := r.Reply(context.Background(), sess, "still vague"); err != nil {
			t.Fatalf("Reply %d failed: %v", i, err)
		}
	}
	if sess.Rounds() != 3 {
		t.Fatalf("rounds = %d, want 3 before the final reply", sess.Rounds())
	}

	_, err := r.Reply(context.Background(), sess, "still vague")
	var abandoned *AbandonedError
	if !errors.As(err, &abandoned) {
		t.Fatalf("expected AbandonedError, got: %v", err)
	}
	if sess.Status() != StatusAbandoned {
		t.Errorf("status = %s, want abandoned", sess.Status())
	}
	if abandoned.Rounds != 3 {
		t.Errorf("abandoned after %d rounds, want 3", abandoned.Rounds)
	}
}

func TestResolver_ClassificationFailureIsRetryable(t *testing.T) {
	stub := &stubClassifier{}
	parseErr := &analysis.ParseError{Content: "not json", Err: errors.New("bad json")}
	stub.push(nil, parseErr)
	stub.push(nil, parseErr)
	stub.push(clearResult(analysis.CategoryOther), nil)
	r := newTestResolver(stub)
	sess := NewSession()

	req, _ := request.Normalize("q", "", false)

	// Two consecutive failures surface the error without abandoning.
	_, err := r.Submit(context.Background(), sess, req)
	var pe *analysis.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got: %v", err)
	}
	if sess.Status() != StatusAwaitingClassification {
		t.Fatalf("status = %s, want awaiting-classification", sess.Status())
	}

	if _, err = r.Retry(context.Background(), sess); !errors.As(err, &pe) {
		t.Fatalf("expected ParseError on retry, got: %v", err)
	}
	if sess.Status() != StatusAwaitingClassification {
		t.Fatalf("status = %s, want awaiting-classification after 2 failures", sess.Status())
	}

	// Third attempt succeeds and resolves.
	out, err := r.Retry(context.Background(), sess)
	if err != nil {
		t.Fatalf("final retry failed: %v", err)
	}
	if out.Status != StatusResolvedClear {
		t.Errorf("status = %s, want resolved-clear", out.Status)
	}
}

func TestResolver_RepeatedFailuresAbandon(t *testing.T) {
	stub := &stubClassifier{}
	for i := 0; i < 3; i++ {
		stub.push(nil, &analysis.ParseError{Content: "x", Err: errors.New("bad")})
	}
	r := newTestResolver(stub)
	sess := NewSession()

	req, _ := request.Normalize("q", "", false)
	_, _ = r.Submit(context.Background(), sess, req)
	_, _ = r.Retry(context.Background(), sess)

	_, err := r.Retry(context.Background(), sess)
	var abandoned *AbandonedError
	if !errors.As(err, &abandoned) {
		t.Fatalf("expected AbandonedError on third failure, got: %v", err)
	}
	if sess.Status() != StatusAbandoned {
		t.Errorf("status = %s, want abandoned", sess.Status())
	}
}

func TestResolver_ReplyInWrongState(t *testing.T) {
	r := newTestResolver(&stubClassifier{})
	sess := NewSession()

	_, err := r.Reply(context.Background(), sess, "hello")
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got: %v", err)
	}
	if stateErr.Want != StatusAwaitingClarificationReply {
		t.Errorf("want-state = %s", stateErr.Want)
	}
}

func TestResolver_AbandonDiscardsInFlightResult(t *testing.T) {
	stub := &stubClassifier{block: make(chan struct{})}
	stub.push(clearResult(analysis.CategoryGrammar), nil)
	r := newTestResolver(stub)
	sess := NewSession()

	req, _ := request.Normalize("q", "", false)

	done := make(chan error, 1)
	go func() {
		_, err := r.Submit(context.Background(), sess, req)
		done <- err
	}()

	// Abandon while the classification is still blocked, then let it land.
	for {
		sess.mu.Lock()
		inFlight := sess.inFlight
		sess.mu.Unlock()
		if inFlight {
			break
		}
	}
	sess.Abandon()
	close(stub.block)

	err := <-done
	var abandoned *AbandonedError
	if !errors.As(err, &abandoned) {
		t.Fatalf("expected AbandonedError, got: %v", err)
	}
	if len(sess.History()) != 0 {
		t.Error("discarded result must not appear in history")
	}
	if sess.Status() != StatusAbandoned {
		t.Errorf("status = %s, want abandoned", sess.Status())
	}
}

func TestResolver_SecondOperationRejected(t *testing.T) {
	stub := &stubClassifier{block: make(chan struct{})}
	stub.push(clearResult(analysis.CategoryGrammar), nil)
	r := newTestResolver(stub)
	sess := NewSession()

	req, _ := request.Normalize("q", "", false)

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := r.Submit(context.Background(), sess, req)
		done <- err
	}()
	<-started

	// Wait until the first operation holds the in-flight slot.
	for {
		sess.mu.Lock()
		inFlight := sess.inFlight
		sess.mu.Unlock()
		if inFlight {
			break
		}
	}

	_, err := r.Submit(context.Background(), sess, req)
	if !errors.Is(err, ErrOperationInFlight) {
		t.Fatalf("expected ErrOperationInFlight, got: %v", err)
	}

	close(stub.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
}

func TestResolver_LLMClarificationQuestion(t *testing.T) {
	stub := &stubClassifier{}
	stub.push(ambiguousResult("target error type unspecified"), nil)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage("Should I focus on grammar or word choice?")},
	)
	r := NewResolver(stub, mock, nil, DefaultResolverConfig())
	sess := NewSession()

	req, _ := request.Normalize("fix this", "I have went to school.", true)
	out, err := r.Submit(context.Background(), sess, req)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if out.Question != "Should I focus on grammar or word choice?" {
		t.Errorf("question = %q", out.Question)
	}
}

func TestResolver_QuestionFallsBackOnLLMFailure(t *testing.T) {
	stub := &stubClassifier{}
	stub.push(ambiguousResult("missing sentence"), nil)
	mock := llm.NewMockProvider() // empty queue → provider error
	r := NewResolver(stub, mock, nil, DefaultResolverConfig())
	sess := NewSession()

	req, _ := request.Normalize("translate", "", false)
	out, err := r.Submit(context.Background(), sess, req)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if !strings.Contains(out.Question, "missing sentence") {
		t.Errorf("expected static fallback question, got %q", out.Question)
	}
}

// recordingRepo captures journal writes for assertions.
type recordingRepo struct {
	mu       sync.Mutex
	actions  []string
	analyses []store.AnalysisEventData
}

func (r *recordingRepo) AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error {
	return nil
}
func (r *recordingRepo) QueryLLMEvents(ctx context.Context, opts store.QueryOpts) ([]store.LLMEventRecord, error) {
	return nil, nil
}
func (r *recordingRepo) GetLLMEvent(ctx context.Context, id int) (*store.LLMEventRecord, error) {
	return nil, nil
}
func (r *recordingRepo) LLMUsageByPurpose(ctx context.Context) ([]store.LLMUsageStat, error) {
	return nil, nil
}
func (r *recordingRepo) LLMUsageByModel(ctx context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}
func (r *recordingRepo) AppendAnalysis(ctx context.Context, data store.AnalysisEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses = append(r.analyses, data)
	return nil
}
func (r *recordingRepo) QueryAnalyses(ctx context.Context, opts store.QueryOpts) ([]store.AnalysisEventRecord, error) {
	return nil, nil
}
func (r *recordingRepo) AppendSessionEvent(ctx context.Context, data store.SessionEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, data.Action)
	return nil
}
func (r *recordingRepo) QuerySessionEvents(ctx context.Context, opts store.QueryOpts) ([]store.SessionEventRecord, error) {
	return nil, nil
}

func TestResolver_JournalsLifecycle(t *testing.T) {
	stub := &stubClassifier{}
	stub.push(ambiguousResult("unclear"), nil)
	stub.push(clearResult(analysis.CategoryGrammar), nil)
	repo := &recordingRepo{}
	r := NewResolver(stub, nil, repo, DefaultResolverConfig())
	sess := NewSession()

	req, _ := request.Normalize("fix this", "", false)
	if _, err := r.Submit(context.Background(), sess, req); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := r.Reply(context.Background(), sess, "grammar"); err != nil {
		t.Fatalf("Reply failed: %v", err)
	}

	want := []string{"request", "clarify", "request", "resolve"}
	if len(repo.actions) != len(want) {
		t.Fatalf("actions = %v, want %v", repo.actions, want)
	}
	for i := range want {
		if repo.actions[i] != want[i] {
			t.Errorf("action[%d] = %q, want %q", i, repo.actions[i], want[i])
		}
	}

	if len(repo.analyses) != 2 {
		t.Fatalf("analyses = %d, want 2", len(repo.analyses))
	}
	if repo.analyses[0].Round != 0 || !repo.analyses[0].Ambiguous {
		t.Errorf("first analysis = %+v", repo.analyses[0])
	}
	if repo.analyses[1].Round != 1 || repo.analyses[1].Ambiguous {
		t.Errorf("second analysis = %+v", repo.analyses[1])
	}
}
