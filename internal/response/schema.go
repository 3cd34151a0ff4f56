package response

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// SchemaCheck returns a Check that validates documents against the JSON
// Schema in definition. The schema is compiled on first use and cached
// under name; a definition that fails to compile fails every check.
func SchemaCheck(name, definition string) Check {
	return func(doc any) error {
		schema, err := compileSchema(name, definition)
		if err != nil {
			return err
		}
		if err := schema.Validate(doc); err != nil {
			return fmt.Errorf("schema %s: %w", name, err)
		}
		return nil
	}
}

func compileSchema(name, definition string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, err := jsonschema.UnmarshalJSON(strings.NewReader(definition))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	url := "schema://" + name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add schema resource %s: %w", name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	actual, _ := schemaCache.LoadOrStore(name, compiled)
	return actual.(*jsonschema.Schema), nil
}
