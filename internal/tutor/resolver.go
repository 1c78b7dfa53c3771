package tutor

import (
	"context"
	"fmt"

	"github.com/kotoba-ai/kotoba/internal/analysis"
	"github.com/kotoba-ai/kotoba/internal/llm"
	"github.com/kotoba-ai/kotoba/internal/request"
	"github.com/kotoba-ai/kotoba/internal/store"
)

// Classifier produces a structured analysis of a normalized request.
type Classifier interface {
	Classify(ctx context.Context, req request.NormalizedRequest, prior []analysis.Exchange) (*analysis.Result, error)
}

// ResolverConfig holds the resolver's policy knobs.
type ResolverConfig struct {
	// MaxRounds caps clarification rounds per session. It also bounds
	// consecutive surfaced classification failures before giving up.
	MaxRounds int

	// Question generation settings.
	QuestionMaxTokens   int
	QuestionTemperature float64
}

// DefaultResolverConfig returns sensible defaults.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		MaxRounds:           3,
		QuestionMaxTokens:   256,
		QuestionTemperature: 0.7,
	}
}

// Resolver drives the session state machine: classify, then either
// dispatch or enter a clarification round. All classifier and LLM
// failures are absorbed here and turned into a retry opportunity, a
// fallback question, or an Abandoned transition; none of them crash the
// session.
type Resolver struct {
	classifier Classifier
	provider   llm.Provider   // clarification questions; nil → static fallback
	events     store.EventRepo // optional journal
	cfg        ResolverConfig
}

// NewResolver creates a resolver. provider and events may be nil.
func NewResolver(classifier Classifier, provider llm.Provider, events store.EventRepo, cfg ResolverConfig) *Resolver {
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = DefaultResolverConfig().MaxRounds
	}
	return &Resolver{classifier: classifier, provider: provider, events: events, cfg: cfg}
}

// Outcome is the result of processing one learner input.
type Outcome struct {
	Status   Status
	Question string           // set when status == AwaitingClarificationReply
	Task     *ExplanationTask // set when status == ResolvedClear
}

// Submit classifies a fresh request on a session in
// AwaitingClassification.
func (r *Resolver) Submit(ctx context.Context, sess *Session, req request.NormalizedRequest) (*Outcome, error) {
	gen, err := sess.beginOp(StatusAwaitingClassification)
	if err != nil {
		return nil, err
	}
	defer sess.endOp()

	sess.mu.Lock()
	sess.pending = &req
	prior := sess.exchangesLocked()
	turnNum := sess.turnCounter + 1
	sess.mu.Unlock()

	r.journalSession(ctx, store.SessionEventData{
		SessionID: sess.id, Action: "request", Turn: turnNum,
	})

	return r.resolve(ctx, sess, gen, req, prior, turnNum)
}

// Retry re-runs classification on the request that last failed. Valid
// only while the session is retryable in AwaitingClassification.
func (r *Resolver) Retry(ctx context.Context, sess *Session) (*Outcome, error) {
	gen, err := sess.beginOp(StatusAwaitingClassification)
	if err != nil {
		return nil, err
	}
	defer sess.endOp()

	sess.mu.Lock()
	if sess.pending == nil {
		sess.mu.Unlock()
		return nil, fmt.Errorf("nothing to retry: no pending request")
	}
	req := *sess.pending
	prior := sess.exchangesLocked()
	turnNum := sess.turnCounter + 1
	sess.mu.Unlock()

	return r.resolve(ctx, sess, gen, req, prior, turnNum)
}

// Reply folds a clarification reply into the prior request and
// re-classifies with the full turn history.
func (r *Resolver) Reply(ctx context.Context, sess *Session, reply string) (*Outcome, error) {
	gen, err := sess.beginOp(StatusAwaitingClarificationReply)
	if err != nil {
		return nil, err
	}
	defer sess.endOp()

	sess.mu.Lock()
	last := &sess.turns[len(sess.turns)-1]
	next, ferr := request.FoldReply(last.Request, reply)
	if ferr != nil {
		sess.mu.Unlock()
		return nil, ferr
	}
	last.Reply = reply
	sess.status = StatusAwaitingClassification
	sess.pending = &next
	prior := sess.exchangesLocked()
	turnNum := sess.turnCounter + 1
	sess.mu.Unlock()

	r.journalSession(ctx, store.SessionEventData{
		SessionID: sess.id, Action: "request", Turn: turnNum, Detail: "clarification reply",
	})

	return r.resolve(ctx, sess, gen, next, prior, turnNum)
}

// resolve runs one classification and applies the verdict. The session
// lock is not held across LLM calls; gen detects an abandon or reset
// that happened mid-call, in which case the result is discarded.
func (r *Resolver) resolve(ctx context.Context, sess *Session, gen int, req request.NormalizedRequest, prior []analysis.Exchange, turnNum int) (*Outcome, error) {
	round := len(prior)

	result, cerr := r.classifier.Classify(ctx, req, prior)

	sess.mu.Lock()
	if sess.staleLocked(gen) {
		rounds := sess.rounds
		sess.mu.Unlock()
		return nil, &AbandonedError{Rounds: rounds, Reason: "session closed while classifying"}
	}

	if cerr != nil {
		sess.failures++
		if sess.failures >= r.cfg.MaxRounds {
			sess.abandonLocked()
			rounds := sess.rounds
			sess.mu.Unlock()
			r.journalSession(ctx, store.SessionEventData{
				SessionID: sess.id, Action: "abandon", Turn: turnNum, Rounds: rounds,
				Detail: "classification kept failing",
			})
			return nil, &AbandonedError{Rounds: rounds, Reason: "classification kept failing"}
		}
		sess.mu.Unlock()
		// Recoverable: the session stays in AwaitingClassification and
		// the caller may Retry.
		return nil, cerr
	}

	sess.turns = append(sess.turns, Turn{Number: turnNum, Request: req, Result: result})
	sess.turnCounter = turnNum
	sess.failures = 0
	sess.pending = nil

	if !result.Verdict.IsAmbiguous() {
		sess.status = StatusResolvedClear
		task := newTaskLocked(sess)
		rounds := sess.rounds
		sess.mu.Unlock()
		r.journalAnalysis(ctx, sess.id, turnNum, round, result)
		r.journalSession(ctx, store.SessionEventData{
			SessionID: sess.id, Action: "resolve", Turn: turnNum, Rounds: rounds,
			Category: string(result.Category), Topic: result.Topic,
		})
		return &Outcome{Status: StatusResolvedClear, Task: task}, nil
	}

	if sess.rounds >= r.cfg.MaxRounds {
		sess.abandonLocked()
		rounds := sess.rounds
		sess.mu.Unlock()
		r.journalAnalysis(ctx, sess.id, turnNum, round, result)
		r.journalSession(ctx, store.SessionEventData{
			SessionID: sess.id, Action: "abandon", Turn: turnNum, Rounds: rounds,
			Detail: result.Verdict.Reason(),
		})
		return nil, &AbandonedError{Rounds: rounds, Reason: result.Verdict.Reason()}
	}

	sess.rounds++
	sess.status = StatusAwaitingClarificationReply
	sess.mu.Unlock()

	r.journalAnalysis(ctx, sess.id, turnNum, round, result)

	question := r.clarificationQuestion(ctx, req, result)

	sess.mu.Lock()
	if sess.staleLocked(gen) {
		rounds := sess.rounds
		sess.mu.Unlock()
		return nil, &AbandonedError{Rounds: rounds, Reason: "session closed while classifying"}
	}
	sess.turns[len(sess.turns)-1].Question = question
	sess.mu.Unlock()

	r.journalSession(ctx, store.SessionEventData{
		SessionID: sess.id, Action: "clarify", Turn: turnNum, Detail: question,
	})

	return &Outcome{Status: StatusAwaitingClarificationReply, Question: question}, nil
}

// Journal writes are best-effort; the conversation never fails because
// the audit log did.
func (r *Resolver) journalSession(ctx context.Context, data store.SessionEventData) {
	if r.events == nil {
		return
	}
	_ = r.events.AppendSessionEvent(ctx, data)
}

func (r *Resolver) journalAnalysis(ctx context.Context, sessionID string, turn, round int, result *analysis.Result) {
	if r.events == nil {
		return
	}
	_ = r.events.AppendAnalysis(ctx, store.AnalysisEventData{
		SessionID:       sessionID,
		Turn:            turn,
		Round:           round,
		Category:        string(result.Category),
		Topic:           result.Topic,
		Summary:         result.Summary,
		Ambiguous:       result.Verdict.IsAmbiguous(),
		AmbiguityReason: result.Verdict.Reason(),
	})
}
