package gamedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaBaseURL roots the in-memory schema resources.
const schemaBaseURL = "mem://gamedata/"

// Load reads a JSON file from the embedded filesystem, validates it against
// its sibling <name>.schema.json when one exists, and unmarshals it.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := validate(filename, content); err != nil {
		return result, err
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// schemaName returns the schema file paired with a data file.
func schemaName(filename string) string {
	return strings.TrimSuffix(filename, ".json") + ".schema.json"
}

// validate checks content against the schema paired with filename.
// Files without a schema pass.
func validate(filename string, content []byte) error {
	name := schemaName(filename)
	raw, err := dataFS.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", name, err)
	}

	return validateWith(name, raw, content)
}

// validateWith compiles schemaJSON and validates the document against it.
func validateWith(name string, schemaJSON, content []byte) error {
	schema, err := jsonschema.CompileString(schemaBaseURL+name, string(schemaJSON))
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return fmt.Errorf("failed to parse JSON for validation against %s: %w", name, err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("document does not match %s: %w", name, err)
	}
	return nil
}
