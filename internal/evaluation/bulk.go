package evaluation

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/rendis/flowdeck/pkg/schema"
)

// bulkSchemaURL is the resource name the envelope schema is registered under.
const bulkSchemaURL = "flowdeck://evaluation/variable-sets.json"

// bulkSchemaJSON constrains a bulk upload to an object of variable sets:
// each entry needs a variables object and may carry an ideal output string
// and a positive run count.
const bulkSchemaJSON = `{
	"type": "object",
	"minProperties": 1,
	"additionalProperties": {
		"type": "object",
		"required": ["variables"],
		"properties": {
			"variables": {"type": "object"},
			"ideal_output": {"type": "string"},
			"num_runs": {"type": "integer", "minimum": 1}
		}
	}
}`

var bulkSchema = mustCompileBulkSchema()

func mustCompileBulkSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(bulkSchemaJSON))
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()
	if err := compiler.AddResource(bulkSchemaURL, doc); err != nil {
		panic(err)
	}
	sch, err := compiler.Compile(bulkSchemaURL)
	if err != nil {
		panic(err)
	}
	return sch
}

// parseBulkVariableSets validates and decodes a bulk upload. The upload's
// own keys become the variable set ids.
func parseBulkVariableSets(text string) (map[string]schema.VariableSet, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(text))
	if err != nil {
		return nil, schema.NewError(schema.ErrCodeValidation, "bulk upload is not valid JSON").WithCause(err)
	}
	if err := bulkSchema.Validate(doc); err != nil {
		return nil, toValidationError(err)
	}

	var sets map[string]schema.VariableSet
	if err := jsonUnmarshalStrict(text, &sets); err != nil {
		return nil, schema.NewError(schema.ErrCodeValidation, "bulk upload is not valid JSON").WithCause(err)
	}
	for id, set := range sets {
		if set.NumRuns == 0 {
			set.NumRuns = 1
			sets[id] = set
		}
	}
	return sets, nil
}

// toValidationError flattens a jsonschema validation failure into one
// structured error, keeping the instance locations of the leaf causes.
func toValidationError(err error) error {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return schema.NewError(schema.ErrCodeValidation, "bulk upload failed validation").WithCause(err)
	}
	locations := make([]string, 0, 4)
	collectLeafLocations(verr, &locations)
	return schema.NewError(schema.ErrCodeValidation, "bulk upload failed validation").
		WithCause(err).
		WithDetails(map[string]any{"locations": locations})
}

func collectLeafLocations(verr *jsonschema.ValidationError, out *[]string) {
	if len(verr.Causes) == 0 {
		loc := "/" + strings.Join(verr.InstanceLocation, "/")
		*out = append(*out, loc)
		return
	}
	for _, cause := range verr.Causes {
		collectLeafLocations(cause, out)
	}
}

// jsonUnmarshalStrict decodes text into out, rejecting trailing content
// after the first JSON value.
func jsonUnmarshalStrict(text string, out any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(out); err != nil {
		return err
	}
	var trailing any
	if dec.Decode(&trailing) == nil {
		return schema.NewError(schema.ErrCodeValidation, "unexpected trailing content")
	}
	return nil
}
