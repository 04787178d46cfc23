package api

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/command.schema.json
var commandSchemaJSON string

var commandSchema = jsonschema.MustCompileString("command.schema.json", commandSchemaJSON)

// ValidateCommandShape checks a raw inbound frame against the wire
// schema before it is decoded into ClientCommand. Payload contents are
// action-specific and validated later by the typed payload structs; this
// only guards the envelope.
func ValidateCommandShape(raw []byte) error {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("malformed command json: %w", err)
	}
	if err := commandSchema.Validate(doc); err != nil {
		return fmt.Errorf("command schema violation: %w", err)
	}
	return nil
}
