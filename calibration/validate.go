package calibration

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
)

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = compileSchema()

func compileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	// Draft 2019+ treats "format" as an annotation unless asserted.
	compiler.AssertFormat = true
	if compiler.Formats == nil {
		compiler.Formats = make(map[string]func(interface{}) bool)
	}
	compiler.Formats["semver"] = isSemver

	if err := compiler.AddResource("calibration.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("calibration: embedded schema is invalid: %v", err))
	}
	schema, err := compiler.Compile("calibration.schema.json")
	if err != nil {
		panic(fmt.Sprintf("calibration: embedded schema failed to compile: %v", err))
	}
	return schema
}

// isSemver is the custom "semver" JSON Schema format keyword, mirroring
// core/types/validation.go's own semver format registration: golang.org/x/
// mod/semver requires a leading "v", so a bare "1.2.3" is normalized before
// the check.
func isSemver(v interface{}) bool {
	s, ok := v.(string)
	if !ok {
		return true // type mismatch is reported by the "type" keyword, not here
	}
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return semver.IsValid(s)
}

// Validate parses and schema-validates a calibration profile document,
// returning the decoded Profile on success.
func Validate(data []byte) (Profile, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Profile{}, fmt.Errorf("calibration: invalid JSON: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return Profile{}, fmt.Errorf("calibration: schema validation failed: %w", err)
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return Profile{}, fmt.Errorf("calibration: decode failed: %w", err)
	}
	return profile, nil
}
