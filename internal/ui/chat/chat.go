// Package chat is the interactive conversation surface: one request in,
// clarification rounds as needed, then the explanation and follow-ups.
package chat

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/kotoba-ai/kotoba/internal/explain"
	"github.com/kotoba-ai/kotoba/internal/request"
	"github.com/kotoba-ai/kotoba/internal/tutor"
	"github.com/kotoba-ai/kotoba/internal/ui/components"
	"github.com/kotoba-ai/kotoba/internal/ui/layout"
)

type phase int

const (
	phaseAnalyzing phase = iota
	phaseAwaitingReply
	phaseRetryable
	phaseExplaining
	phaseChatting
	phaseSummarizing
	phaseDone
)

// Model drives the chat conversation.
type Model struct {
	resolver  *tutor.Resolver
	sess      *tutor.Session
	explainer *explain.Service
	style     explain.Style
	initial   request.NormalizedRequest

	input      components.TextInput
	transcript []explain.Message
	task       *tutor.ExplanationTask
	phase      phase
	errMsg     string
}

// New creates the chat model for a single learner request.
func New(resolver *tutor.Resolver, sess *tutor.Session, explainer *explain.Service, style explain.Style, initial request.NormalizedRequest) *Model {
	return &Model{
		resolver:  resolver,
		sess:      sess,
		explainer: explainer,
		style:     style,
		initial:   initial,
		input:     components.NewTextInput("Type your message...", 500),
		phase:     phaseAnalyzing,
	}
}

func (m *Model) Init() tea.Cmd {
	first := m.initial.QueryText
	if first == "" {
		first = "(sent an image)"
	}
	m.appendLearner(first)
	return tea.Batch(m.input.Init(), m.submitCmd())
}

// StatusLine describes the current phase for the header.
func (m *Model) StatusLine() string {
	switch m.phase {
	case phaseAnalyzing:
		return "analyzing"
	case phaseAwaitingReply:
		return "clarifying"
	case phaseRetryable:
		return "error"
	case phaseExplaining:
		return "explaining"
	case phaseChatting:
		return "follow-up"
	case phaseSummarizing:
		return "wrapping up"
	default:
		return "done"
	}
}

// KeyHints returns the footer hints for the current phase.
func (m *Model) KeyHints() []layout.KeyHint {
	switch m.phase {
	case phaseAwaitingReply, phaseChatting:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Esc", Description: "Finish"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case phaseRetryable:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Retry"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseDone:
		return []layout.KeyHint{
			{Key: "any key", Description: "Exit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)

	case explanationMsg:
		return m.handleExplanation(msg)

	case followupMsg:
		if msg.Err != nil {
			m.appendTutor("Sorry, I could not answer that just now. Try asking again.")
		} else {
			m.appendTutor(msg.Text)
		}
		m.phase = phaseChatting
		return m, nil

	case summaryMsg:
		if msg.Err == nil && msg.Text != "" {
			m.appendTutor("Recap: " + msg.Text)
		}
		m.phase = phaseDone
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseAwaitingReply || m.phase == phaseChatting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleAnalysisDone(msg analysisDoneMsg) (*Model, tea.Cmd) {
	if msg.Err != nil {
		var abandoned *tutor.AbandonedError
		if errors.As(msg.Err, &abandoned) {
			m.appendTutor("I could not pin down what you need after " +
				pluralRounds(abandoned.Rounds) + ". Please start over with a more specific question.")
			m.phase = phaseDone
			return m, nil
		}
		m.errMsg = msg.Err.Error()
		m.phase = phaseRetryable
		return m, nil
	}

	m.errMsg = ""
	switch msg.Out.Status {
	case tutor.StatusResolvedClear:
		m.task = msg.Out.Task
		m.phase = phaseExplaining
		return m, m.explainCmd()

	case tutor.StatusAwaitingClarificationReply:
		m.appendTutor(msg.Out.Question)
		m.phase = phaseAwaitingReply
		m.input.Reset()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleExplanation(msg explanationMsg) (*Model, tea.Cmd) {
	if msg.Err != nil {
		m.appendTutor("Sorry, I could not produce the explanation: " + msg.Err.Error())
		m.phase = phaseDone
		return m, nil
	}
	m.appendTutor(msg.Text)
	m.phase = phaseChatting
	m.input.Reset()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	key := msg.String()

	switch m.phase {
	case phaseDone:
		return m, tea.Quit

	case phaseRetryable:
		switch key {
		case "enter":
			m.phase = phaseAnalyzing
			return m, m.retryCmd()
		case "esc":
			m.sess.Abandon()
			return m, tea.Quit
		}
		return m, nil

	case phaseAwaitingReply:
		switch key {
		case "enter":
			reply := m.input.Value()
			if reply == "" {
				return m, nil
			}
			m.appendLearner(reply)
			m.input.Reset()
			m.phase = phaseAnalyzing
			return m, m.replyCmd(reply)
		case "esc":
			m.sess.Abandon()
			return m, tea.Quit
		}

	case phaseChatting:
		switch key {
		case "enter":
			question := m.input.Value()
			if question == "" {
				return m, nil
			}
			m.appendLearner(question)
			m.input.Reset()
			return m, m.followupCmd(question)
		case "esc":
			m.phase = phaseSummarizing
			return m, m.summaryCmd()
		}
	}

	if m.phase == phaseAwaitingReply || m.phase == phaseChatting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) submitCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.resolver.Submit(context.Background(), m.sess, m.initial)
		return analysisDoneMsg{Out: out, Err: err}
	}
}

func (m *Model) retryCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.resolver.Retry(context.Background(), m.sess)
		return analysisDoneMsg{Out: out, Err: err}
	}
}

func (m *Model) replyCmd(reply string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.resolver.Reply(context.Background(), m.sess, reply)
		return analysisDoneMsg{Out: out, Err: err}
	}
}

func (m *Model) explainCmd() tea.Cmd {
	task := m.task
	style := m.style
	return func() tea.Msg {
		text, err := m.explainer.Explain(context.Background(), task, style)
		return explanationMsg{Text: text, Err: err}
	}
}

func (m *Model) followupCmd(question string) tea.Cmd {
	transcript := m.snapshotTranscript()
	return func() tea.Msg {
		text, err := m.explainer.Followup(context.Background(), transcript, question)
		return followupMsg{Text: text, Err: err}
	}
}

func (m *Model) summaryCmd() tea.Cmd {
	transcript := m.snapshotTranscript()
	return func() tea.Msg {
		text, err := m.explainer.Summarize(context.Background(), transcript)
		return summaryMsg{Text: text, Err: err}
	}
}

func (m *Model) appendLearner(content string) {
	m.transcript = append(m.transcript, explain.Message{Role: "learner", Content: content})
}

func (m *Model) appendTutor(content string) {
	m.transcript = append(m.transcript, explain.Message{Role: "tutor", Content: content})
}

// snapshotTranscript copies the transcript so async commands do not race
// with appends.
func (m *Model) snapshotTranscript() []explain.Message {
	out := make([]explain.Message, len(m.transcript))
	copy(out, m.transcript)
	return out
}

func pluralRounds(n int) string {
	if n == 1 {
		return "1 clarification round"
	}
	return fmt.Sprintf("%d clarification rounds", n)
}
