package tutor

import (
	"fmt"

	"github.com/kotoba-ai/kotoba/internal/analysis"
	"github.com/kotoba-ai/kotoba/internal/request"
)

// ExplanationTask is the finalized, immutable package handed to
// explanation generation once a request is resolved.
type ExplanationTask struct {
	SessionID      string
	Request        request.NormalizedRequest
	Classification analysis.Result
	History        []Turn
}

// Dispatch packages a resolved session for explanation generation. Pure:
// no branching beyond the precondition check. Returns ErrNotResolved
// when the session has not reached ResolvedClear.
func Dispatch(sess *Session) (*ExplanationTask, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.status != StatusResolvedClear {
		return nil, fmt.Errorf("%w: status is %s", ErrNotResolved, sess.status)
	}
	return newTaskLocked(sess), nil
}

// newTaskLocked builds the task from the final turn. Callers must hold
// the session lock and have at least one classified turn.
func newTaskLocked(sess *Session) *ExplanationTask {
	final := sess.turns[len(sess.turns)-1]
	return &ExplanationTask{
		SessionID:      sess.id,
		Request:        final.Request,
		Classification: *final.Result,
		History:        sess.historyLocked(),
	}
}
