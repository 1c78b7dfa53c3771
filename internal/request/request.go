// Package request normalizes raw learner input into the canonical form
// consumed by classification. A request may arrive as free text, as OCR
// text extracted from a worksheet photo, or both.
package request

import (
	"errors"
	"strings"
)

// ErrEmptyInput indicates the learner provided no usable text: both the
// query and the OCR text are empty after trimming. User-correctable,
// surfaced immediately, never sent to the classifier.
var ErrEmptyInput = errors.New("request has no query text and no OCR text")

// NormalizedRequest is the immutable per-turn input to classification.
// At least one of QueryText/OCRText is non-empty; Normalize enforces this.
type NormalizedRequest struct {
	// QueryText is the learner's typed question, whitespace-trimmed.
	QueryText string

	// OCRText is the text extracted from the attached image, if any.
	OCRText string

	// HasImage records whether an image was attached. Stays true even
	// when OCR failed, so the classifier knows an image exists that it
	// could not read.
	HasImage bool
}

// Normalize merges a raw text query and optional OCR text into a
// NormalizedRequest. Whitespace is trimmed; an all-whitespace query is
// treated as empty. Returns ErrEmptyInput when both fields end up empty.
// Deeper semantic validation is the classifier's job.
func Normalize(queryText, ocrText string, hasImage bool) (NormalizedRequest, error) {
	queryText = strings.TrimSpace(queryText)
	ocrText = strings.TrimSpace(ocrText)

	if queryText == "" && ocrText == "" {
		return NormalizedRequest{}, ErrEmptyInput
	}

	return NormalizedRequest{
		QueryText: queryText,
		OCRText:   ocrText,
		HasImage:  hasImage,
	}, nil
}

// FoldReply merges a clarification reply into the prior turn's request,
// producing the next turn's input. The reply is appended to the
// accumulated query text; OCR text and the image flag carry over
// unchanged so earlier context is never lost across rounds.
func FoldReply(prior NormalizedRequest, reply string) (NormalizedRequest, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return NormalizedRequest{}, ErrEmptyInput
	}

	query := prior.QueryText
	if query != "" {
		query += "\n"
	}
	query += reply

	return NormalizedRequest{
		QueryText: query,
		OCRText:   prior.OCRText,
		HasImage:  prior.HasImage,
	}, nil
}
