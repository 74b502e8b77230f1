package indicator

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the parameter record the indicator
// accepts, with the descriptor defaults filled in.
func (d Descriptor) Schema() *jsonschema.Schema {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	r.AllowAdditionalProperties = false

	schema := r.Reflect(Params{})
	schema.Title = d.Name

	accepted := make(map[string]bool, len(d.Options))
	for _, option := range d.Options {
		accepted[option] = true
	}

	for pair := schema.Properties.Oldest(); pair != nil; {
		next := pair.Next()

		if !accepted[pair.Key] {
			schema.Properties.Delete(pair.Key)
		} else if value, ok := d.Defaults.Get(pair.Key); ok && value != 0 {
			pair.Value.Default = value
		}

		pair = next
	}

	return schema
}

// SchemaJSON returns Schema encoded as JSON.
func (d Descriptor) SchemaJSON() (string, error) {
	schemaBytes, err := json.Marshal(d.Schema())
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
