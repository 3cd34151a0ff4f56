package response

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"
)

// Check inspects the generic JSON value of a payload. A non-nil error marks
// the content invalid.
type Check func(doc any) error

// Decode extracts a value of shape from text, runs checks and copies the
// result into T. Decoding is tolerant: fields missing from the payload or
// carrying the wrong type keep their zero value, so only extraction can
// report Malformed and only a check can report InvalidContent.
func Decode[T any](text string, shape Shape, checks ...Check) (T, error) {
	var v T

	raw, err := Extract(text, shape)
	if err != nil {
		return v, err
	}

	if len(checks) > 0 {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return v, malformed(fmt.Errorf("decode document: %w", err))
		}
		for _, check := range checks {
			if err := check(doc); err != nil {
				return v, invalidContent(err)
			}
		}
	}

	assign(reflect.ValueOf(&v).Elem(), gjson.ParseBytes(raw))
	return v, nil
}
