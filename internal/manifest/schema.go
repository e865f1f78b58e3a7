package manifest

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return schema, schemaErr
}

// validateSchema checks manifest JSON against the embedded schema.
func validateSchema(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "embedded manifest schema is invalid").Build()
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.WrapError(err, errors.CategoryManifest, "failed to validate site manifest").Fatal().Build()
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		field := verr.Field()
		if field == "" || field == "(root)" {
			field = "root"
		}
		problems = append(problems, fmt.Sprintf("%s: %s", field, verr.Description()))
	}
	return errors.ManifestError("site manifest does not match schema: " + strings.Join(problems, "; ")).
		WithContext("violations", problems).
		Build()
}
