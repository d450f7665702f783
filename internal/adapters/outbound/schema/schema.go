package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed document.schema.json
var documentSchemaJSON string

//go:embed result.schema.json
var resultSchemaJSON string

// printer formats schema validation error messages.
var printer = message.NewPrinter(language.English)

// Validator implements domain.SchemaValidator with the embedded schemas.
type Validator struct {
	document *jsonschema.Schema
	result   *jsonschema.Schema
}

func New() *Validator {
	return &Validator{
		document: mustCompile(documentSchemaJSON, "document.schema.json"),
		result:   mustCompile(resultSchemaJSON, "result.schema.json"),
	}
}

func mustCompile(raw, name string) *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		panic(fmt.Sprintf("parsing embedded %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("adding %s resource: %v", name, err))
	}
	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compiling %s: %v", name, err))
	}
	return sch
}

// ValidateDocument checks a decoded decision document against the input
// schema. A nil return means valid.
func (v *Validator) ValidateDocument(instance any) []string {
	return validate(v.document, instance)
}

// ValidateResult checks a produced evaluation result against the output
// schema.
func (v *Validator) ValidateResult(instance any) []string {
	return validate(v.result, instance)
}

func validate(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectErrors(ve, &errs)
	return errs
}

// collectErrors flattens the cause tree into one instance-path-prefixed
// message per leaf.
func collectErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(printer)))
		return
	}
	for _, cause := range ve.Causes {
		collectErrors(cause, errs)
	}
}
