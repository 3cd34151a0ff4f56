// Package response turns free-form model text into validated JSON payloads.
//
// Models are asked for bare JSON but often wrap it in Markdown fences or
// surround it with prose. Extraction runs in two stages: a strict parse of
// the fence-stripped text, then a best-effort parse of the widest span
// between the first opening and the last closing delimiter.
package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Shape is the top-level JSON kind a payload must have.
type Shape int

const (
	Object Shape = iota
	Array
)

func (s Shape) delimiters() (opening, closing byte) {
	if s == Array {
		return '[', ']'
	}
	return '{', '}'
}

func (s Shape) String() string {
	if s == Array {
		return "array"
	}
	return "object"
}

// StripFences trims whitespace and removes an optional leading ```json or
// ``` marker and an optional trailing ``` marker. Each side is handled
// independently.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "```json"); ok {
		text = rest
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// Extract returns the JSON value of the given shape found in text.
func Extract(text string, shape Shape) (json.RawMessage, error) {
	stripped := StripFences(text)

	raw, strictErr := parseStrict(stripped, shape)
	if strictErr == nil {
		return raw, nil
	}

	raw, spanErr := parseSpan(stripped, shape)
	if spanErr == nil {
		return raw, nil
	}

	return nil, malformed(errors.Join(strictErr, spanErr))
}

// parseStrict accepts text only if the whole of it is a JSON value of shape.
func parseStrict(text string, shape Shape) (json.RawMessage, error) {
	b := []byte(text)
	if !json.Valid(b) {
		return nil, fmt.Errorf("strict parse: invalid JSON")
	}
	opening, _ := shape.delimiters()
	if len(b) == 0 || b[0] != opening {
		return nil, fmt.Errorf("strict parse: not a JSON %s", shape)
	}
	return json.RawMessage(b), nil
}

// parseSpan parses the span from the first opening delimiter to the last
// closing one.
func parseSpan(text string, shape Shape) (json.RawMessage, error) {
	opening, closing := shape.delimiters()
	start := strings.IndexByte(text, opening)
	end := strings.LastIndexByte(text, closing)
	if start < 0 || end < start {
		return nil, fmt.Errorf("span parse: no JSON %s found", shape)
	}

	span := []byte(text[start : end+1])
	if !json.Valid(span) {
		return nil, fmt.Errorf("span parse: invalid JSON %s", shape)
	}
	return json.RawMessage(bytes.Clone(span)), nil
}
