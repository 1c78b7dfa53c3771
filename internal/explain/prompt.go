package explain

import (
	"fmt"
	"strings"

	"github.com/kotoba-ai/kotoba/internal/tutor"
)

func explainSystemPrompt(style Style) string {
	base := `You are an expert English tutor for Japanese learners. Explain the learner's resolved request. Use the learner's material (their sentence, the worksheet text) as the running example. Plain text only, no markdown tables.`

	switch style {
	case StyleSimple:
		return base + `

Style: keep it short and simple. A few sentences, everyday vocabulary, one example at most.`
	case StyleSocratic:
		return base + `

Style: Socratic. Do not state the answer outright; lead the learner there with two or three guiding questions, then confirm the key point at the end.`
	default:
		return base + `

Style: detailed. Explain the rule, why the learner's version is wrong or right, give two or three examples, and finish with a one-line takeaway.`
	}
}

func buildExplainMessage(task *tutor.ExplanationTask) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Category: %s\n", task.Classification.Category))
	if task.Classification.Topic != "" {
		b.WriteString(fmt.Sprintf("Topic: %s\n", task.Classification.Topic))
	}
	if task.Classification.Summary != "" {
		b.WriteString(fmt.Sprintf("Request: %s\n", task.Classification.Summary))
	}
	b.WriteString(fmt.Sprintf("Learner's words: %s\n", task.Request.QueryText))
	if task.Request.OCRText != "" {
		b.WriteString(fmt.Sprintf("Material from their image: %s\n", task.Request.OCRText))
	}

	if rounds := clarificationRounds(task.History); rounds != "" {
		b.WriteString("\nClarifications agreed during this conversation:\n")
		b.WriteString(rounds)
	}

	b.WriteString("\nWrite the explanation now.")
	return b.String()
}

// clarificationRounds renders the question/reply pairs so the
// explanation honors what the learner already narrowed down.
func clarificationRounds(history []tutor.Turn) string {
	var b strings.Builder
	for _, t := range history {
		if t.Question == "" || t.Reply == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("- asked: %s\n  learner: %s\n", t.Question, t.Reply))
	}
	return b.String()
}

const followupSystemPrompt = `You are an expert English tutor continuing a conversation after giving an explanation. Answer the learner's follow-up directly and briefly, staying consistent with what you already told them. If the follow-up changes the subject entirely, answer it anyway and note that they can start a fresh question for a full explanation.`

func buildFollowupMessage(transcript []Message, latest string) string {
	var b strings.Builder

	b.WriteString("Conversation so far:\n")
	for _, m := range transcript {
		b.WriteString(fmt.Sprintf("[%s] %s\n", m.Role, m.Content))
	}
	b.WriteString(fmt.Sprintf("\nLearner's follow-up: %s", latest))
	return b.String()
}

const summarySystemPrompt = `You summarize a finished tutoring conversation for the learner's notes. Produce a short recap: what was asked, the key points of the explanation, and one thing to practice. A handful of sentences, no headings.`

func buildSummaryMessage(transcript []Message) string {
	var b strings.Builder

	b.WriteString("Conversation:\n")
	for _, m := range transcript {
		b.WriteString(fmt.Sprintf("[%s] %s\n", m.Role, m.Content))
	}
	b.WriteString("\nWrite the recap now.")
	return b.String()
}
