package analysis

import "fmt"

// ParseError indicates the model's reply did not parse as the expected
// JSON contract or omitted a required field. Recoverable: the caller may
// retry, then must surface the failure.
type ParseError struct {
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("classification response unparseable: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CategoryError indicates the model returned a category outside the
// closed taxonomy. Recoverable in the same way as ParseError.
type CategoryError struct {
	Value string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("category %q is not in the taxonomy", e.Value)
}
