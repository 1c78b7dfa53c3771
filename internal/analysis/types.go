package analysis

import (
	"fmt"

	"github.com/kotoba-ai/kotoba/internal/request"
)

// Category is the closed taxonomy of learner request types.
type Category string

const (
	CategoryGrammar              Category = "grammar"
	CategoryVocabulary           Category = "vocabulary"
	CategoryReadingComprehension Category = "reading-comprehension"
	CategoryComposition          Category = "composition"
	CategoryTranslationToNative  Category = "translation-to-native"
	CategorySyntaxAnalysis       Category = "syntax-analysis"
	CategoryTranslationToForeign Category = "translation-to-foreign"
	CategoryCorrection           Category = "correction"
	CategoryOther                Category = "other"
)

// Categories returns all valid categories in taxonomy order.
func Categories() []Category {
	return []Category{
		CategoryGrammar,
		CategoryVocabulary,
		CategoryReadingComprehension,
		CategoryComposition,
		CategoryTranslationToNative,
		CategorySyntaxAnalysis,
		CategoryTranslationToForeign,
		CategoryCorrection,
		CategoryOther,
	}
}

// ParseCategory maps a raw string to a Category. Returns a CategoryError
// for anything outside the closed set; unknown values are never coerced
// to CategoryOther silently.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &CategoryError{Value: s}
}

// Verdict is the classifier's binary ambiguity judgment. The reason is
// coupled to the judgment by construction: a clear verdict carries no
// reason, an ambiguous one always has a non-empty reason.
type Verdict struct {
	ambiguous bool
	reason    string
}

// ClearVerdict returns the verdict for a self-sufficient request.
func ClearVerdict() Verdict {
	return Verdict{}
}

// AmbiguousVerdict returns an ambiguous verdict. An empty reason is
// replaced with a diagnostic placeholder so the invariant holds even
// when the model omits it.
func AmbiguousVerdict(reason string) Verdict {
	if reason == "" {
		reason = "model judged the request ambiguous but gave no reason"
	}
	return Verdict{ambiguous: true, reason: reason}
}

// IsAmbiguous reports whether the request needs clarification.
func (v Verdict) IsAmbiguous() bool {
	return v.ambiguous
}

// Reason returns why the request was judged ambiguous. Empty iff the
// verdict is clear.
func (v Verdict) Reason() string {
	return v.reason
}

func (v Verdict) String() string {
	if v.ambiguous {
		return fmt.Sprintf("ambiguous (%s)", v.reason)
	}
	return "clear"
}

// Result is the structured analysis of one learner request.
type Result struct {
	Category Category
	Topic    string
	Summary  string
	OCRText  string // model's reading of the image, if any
	Verdict  Verdict
}

// Exchange is one completed request/verdict pair, optionally with the
// clarification question asked and the learner's reply. Passed to the
// classifier as an immutable history snapshot so re-classification can
// use earlier context without re-asking the same question.
type Exchange struct {
	Request  request.NormalizedRequest
	Result   Result
	Question string
	Reply    string
}
