package analysis

import (
	"bytes"
	"text/template"

	"github.com/kotoba-ai/kotoba/internal/request"
)

const analysisSystemPrompt = `You are an expert English tutor for Japanese learners. Analyze the learner's request and decide whether it can be answered directly or needs one clarifying question first.

Category definitions:
- grammar: questions about grammar rules or usage
- vocabulary: word meanings, nuance, collocations
- reading-comprehension: understanding a passage
- composition: writing an English text from scratch
- translation-to-native: translating English into the learner's language
- syntax-analysis: parsing the structure of an English sentence
- translation-to-foreign: translating the learner's language into English
- correction: fixing errors in learner-written English
- other: anything that fits none of the above

Instructions:
- Pick exactly one category from the list. Never invent a new one.
- If an image transcription is provided, read it together with the query; when they refer to different material, say so in reason_for_ambiguity rather than guessing which one the learner means.
- Judge the request "clear" only when it is specific enough to explain in detail as-is; otherwise "ambiguous" with a concise reason.
- When earlier clarification rounds are shown, use them instead of asking for the same information again.
- Reply with only the JSON object. Set reason_for_ambiguity to null when clear.`

// promptInput is the template context for one classification call.
type promptInput struct {
	Request request.NormalizedRequest
	Prior   []Exchange
}

var analysisUserTemplate = template.Must(template.New("analysis").Parse(`Learner query: {{if .Request.QueryText}}{{.Request.QueryText}}{{else}}(none){{end}}
{{- if .Request.OCRText}}
Image transcription (OCR): {{.Request.OCRText}}
{{- else if .Request.HasImage}}
An image was attached but no text could be read from it.
{{- end}}
{{- if .Prior}}

Earlier clarification rounds, oldest first:
{{- range .Prior}}
- request: {{.Request.QueryText}}
  verdict: {{.Result.Verdict}}
  {{- if .Question}}
  asked: {{.Question}}
  {{- end}}
  {{- if .Reply}}
  learner replied: {{.Reply}}
  {{- end}}
{{- end}}
{{- end}}`))

// buildAnalysisMessage renders the user prompt. Pure function of the
// request and the history snapshot, so identical input always yields an
// identical prompt.
func buildAnalysisMessage(req request.NormalizedRequest, prior []Exchange) (string, error) {
	var buf bytes.Buffer
	if err := analysisUserTemplate.Execute(&buf, promptInput{Request: req, Prior: prior}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
