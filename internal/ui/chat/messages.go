package chat

import (
	"github.com/kotoba-ai/kotoba/internal/tutor"
)

// analysisDoneMsg is sent when a classification round completes.
type analysisDoneMsg struct {
	Out *tutor.Outcome
	Err error
}

// explanationMsg is sent when the main explanation has been generated.
type explanationMsg struct {
	Text string
	Err  error
}

// followupMsg is sent when a follow-up answer has been generated.
type followupMsg struct {
	Text string
	Err  error
}

// summaryMsg is sent when the end-of-conversation recap has been generated.
type summaryMsg struct {
	Text string
	Err  error
}
