// Package tutor drives one tutoring conversation: it owns the session
// state machine that decides whether a learner request is answerable
// as-is or needs clarification rounds first.
package tutor

import (
	"sync"

	"github.com/google/uuid"
	"github.com/kotoba-ai/kotoba/internal/analysis"
	"github.com/kotoba-ai/kotoba/internal/request"
)

// Status is the lifecycle state of a session.
type Status string

const (
	// StatusAwaitingClassification: a request is in (or ready for)
	// classification. Initial state.
	StatusAwaitingClassification Status = "awaiting-classification"

	// StatusAwaitingClarificationReply: a clarification question has
	// been surfaced and the session waits on the learner.
	StatusAwaitingClarificationReply Status = "awaiting-clarification-reply"

	// StatusResolvedClear: terminal success, the request is dispatchable.
	StatusResolvedClear Status = "resolved-clear"

	// StatusAbandoned: terminal failure, the clarification budget ran out
	// or the learner gave up.
	StatusAbandoned Status = "abandoned"
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusResolvedClear || s == StatusAbandoned
}

// Turn is one normalized-request/verdict pair in the session history.
type Turn struct {
	Number   int
	Request  request.NormalizedRequest
	Result   *analysis.Result // nil while classification is pending or failed
	Question string           // clarification question issued on this turn
	Reply    string           // learner reply, folded into the next turn's request
}

// Session holds the mutable state of one tutoring conversation. Only the
// Resolver mutates it; everything else reads snapshots. A session lives
// for the process lifetime of its conversation; there is no implicit
// persistence.
type Session struct {
	mu          sync.Mutex
	id          string
	status      Status
	turns       []Turn
	turnCounter int
	rounds      int // clarification rounds used
	failures    int // surfaced classification failures
	pending     *request.NormalizedRequest
	inFlight    bool
	generation  int // bumped on abandon/reset so stale results are discarded
}

// NewSession creates an empty session in AwaitingClassification.
func NewSession() *Session {
	return &Session{
		id:     uuid.NewString(),
		status: StatusAwaitingClassification,
	}
}

// ID returns the session's UUID.
func (s *Session) ID() string {
	return s.id
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Rounds returns the number of clarification rounds used so far.
func (s *Session) Rounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rounds
}

// History returns an immutable snapshot of the session's turns, oldest
// first. Mutating the returned slice does not affect the session.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyLocked()
}

func (s *Session) historyLocked() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// exchangesLocked builds the immutable history snapshot passed to the
// classifier. Turns whose classification failed carry no result and are
// skipped.
func (s *Session) exchangesLocked() []analysis.Exchange {
	var out []analysis.Exchange
	for _, t := range s.turns {
		if t.Result == nil {
			continue
		}
		out = append(out, analysis.Exchange{
			Request:  t.Request,
			Result:   *t.Result,
			Question: t.Question,
			Reply:    t.Reply,
		})
	}
	return out
}

// Abandon moves the session to Abandoned. Safe to call while a
// classification is in flight: the in-flight result is discarded when it
// lands. Abandoning a terminal session is a no-op.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abandonLocked()
}

func (s *Session) abandonLocked() {
	if s.status.Terminal() {
		return
	}
	s.status = StatusAbandoned
	s.generation++
}

// Reset returns the session to its initial empty state under the same
// ID. Any in-flight classification result is discarded when it lands.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusAwaitingClassification
	s.turns = nil
	s.turnCounter = 0
	s.rounds = 0
	s.failures = 0
	s.pending = nil
	s.generation++
}

// beginOp marks the start of an exclusive operation. A session processes
// one turn at a time; a second concurrent call is a caller bug.
func (s *Session) beginOp(want Status) (gen int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != want {
		return 0, &StateError{Want: want, Got: s.status}
	}
	if s.inFlight {
		return 0, ErrOperationInFlight
	}
	s.inFlight = true
	return s.generation, nil
}

func (s *Session) endOp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// stale reports whether the session moved on (abandon/reset) since gen
// was captured. Callers must hold the lock.
func (s *Session) staleLocked(gen int) bool {
	return s.generation != gen
}
