package analysis

import "github.com/interntrack/interntrack/internal/response"

// linkSchema requires every present recommendation URL to be an http(s)
// link. Everything else in the document is left to tolerant decoding.
const linkSchema = `{
	"type": "object",
	"properties": {
		"recommendations": {
			"properties": {
				"videos": {"items": {"$ref": "#/$defs/link"}},
				"documentation": {"items": {"$ref": "#/$defs/link"}}
			}
		}
	},
	"$defs": {
		"link": {
			"properties": {
				"url": {"type": "string", "pattern": "^http"}
			}
		}
	}
}`

var checkLinks = response.SchemaCheck("analysis-links", linkSchema)

// ParseAnalysis extracts an Analysis from model text. A single
// recommendation URL that does not start with "http" rejects the whole
// document with an InvalidContent error.
func ParseAnalysis(text string) (*Analysis, error) {
	a, err := response.Decode[Analysis](text, response.Object, checkLinks)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
