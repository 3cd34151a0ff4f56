package response

import "fmt"

// ErrorKind classifies why model text could not be used.
type ErrorKind string

const (
	// Malformed means no JSON value of the expected shape could be extracted.
	Malformed ErrorKind = "malformed"

	// InvalidContent means the JSON parsed but failed a content check.
	InvalidContent ErrorKind = "invalid_content"
)

// ParseError reports a failure to turn model text into a payload.
type ParseError struct {
	Kind ErrorKind
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s model response: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func malformed(err error) *ParseError {
	return &ParseError{Kind: Malformed, Err: err}
}

func invalidContent(err error) *ParseError {
	return &ParseError{Kind: InvalidContent, Err: err}
}
