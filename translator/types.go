package translator

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/graphql-go/graphql"

	"github.com/erraggy/oasgraph/preprocess"
)

// credentialsInputType derives the input object type for one scheme's
// credential shape. Credentials are always supplied as input, so the type is
// built input-flavored regardless of whether the enclosing viewer serves
// queries or mutations. Types are memoized per build: the query and mutation
// AnyAuth viewers share one input object per scheme.
func (t *Translator) credentialsInputType(scheme *preprocess.SecurityScheme) *graphql.InputObject {
	saneName := preprocess.SanitizeAndStore(scheme.RawName, t.data.SaneMap)
	if existing, ok := t.inputTypes[saneName]; ok {
		return existing
	}

	input := graphql.NewInputObject(graphql.InputObjectConfig{
		Name:        t.uniqueTypeName(preprocess.Sanitize(scheme.RawName, preprocess.CasePascal) + "Input"),
		Fields:      t.inputFields(scheme.Schema),
		Description: fmt.Sprintf("Credentials for the %s security scheme.", scheme.RawName),
	})
	t.inputTypes[saneName] = input
	return input
}

// inputFields translates a structural credential schema into input object
// fields. Property maps are unordered, so names are visited sorted; required
// properties become non-null.
func (t *Translator) inputFields(schema *openapi3.Schema) graphql.InputObjectConfigFieldMap {
	fields := make(graphql.InputObjectConfigFieldMap, len(schema.Properties))

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		var fieldType graphql.Input = scalarType(ref.Value)
		if required(schema, name) {
			fieldType = graphql.NewNonNull(fieldType)
		}
		fields[name] = &graphql.InputObjectFieldConfig{
			Type:        fieldType,
			Description: ref.Value.Description,
		}
	}
	return fields
}

// scalarType maps an OpenAPI scalar type to its GraphQL counterpart.
// Credential shapes are flat, so anything unrecognized degrades to String.
func scalarType(schema *openapi3.Schema) *graphql.Scalar {
	switch schema.Type {
	case "integer":
		return graphql.Int
	case "number":
		return graphql.Float
	case "boolean":
		return graphql.Boolean
	default:
		return graphql.String
	}
}

func required(schema *openapi3.Schema, name string) bool {
	for _, r := range schema.Required {
		if r == name {
			return true
		}
	}
	return false
}

// uniqueTypeName guards against two schemes sanitizing to the same GraphQL
// type name by probing numeric suffixes against the names already handed out.
func (t *Translator) uniqueTypeName(base string) string {
	name := base
	for i := 2; ; i++ {
		if _, taken := t.usedTypeNames[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s%d", base, i)
	}
	t.usedTypeNames[name] = struct{}{}
	return name
}
