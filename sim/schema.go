package sim

import (
	"reflect"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of scenario files.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		return t.Name()
	}
	return reflector.Reflect(&Scenario{})
}
