package translator

import (
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsInputType(t *testing.T) {
	tr := newTestTranslator(nil, basicScheme("basicAuth"))
	scheme := tr.data.Security.Get("basicAuth")

	input := tr.credentialsInputType(scheme)

	assert.Equal(t, "BasicAuthInput", input.Name())

	fields := input.Fields()
	require.Contains(t, fields, "username")
	require.Contains(t, fields, "password")
	for _, name := range []string{"username", "password"} {
		_, nonNull := fields[name].Type.(*graphql.NonNull)
		assert.True(t, nonNull, "required credential %s should be non-null", name)
	}
}

func TestCredentialsInputTypeMemoized(t *testing.T) {
	tr := newTestTranslator(nil, apiKeyScheme("PetKey"))
	scheme := tr.data.Security.Get("PetKey")

	first := tr.credentialsInputType(scheme)
	second := tr.credentialsInputType(scheme)

	assert.Same(t, first, second, "query and mutation viewers share one input type per scheme")
}

func TestCredentialsInputTypeNameCollision(t *testing.T) {
	// Two raw names that sanitize to the same PascalCase base.
	tr := newTestTranslator(nil, apiKeyScheme("my-key"), apiKeyScheme("my key"))

	first := tr.credentialsInputType(tr.data.Security.Get("my-key"))
	second := tr.credentialsInputType(tr.data.Security.Get("my key"))

	assert.Equal(t, "MyKeyInput", first.Name())
	assert.Equal(t, "MyKeyInput2", second.Name())
}

func TestScalarType(t *testing.T) {
	tests := []struct {
		oasType string
		want    *graphql.Scalar
	}{
		{"string", graphql.String},
		{"integer", graphql.Int},
		{"number", graphql.Float},
		{"boolean", graphql.Boolean},
		{"", graphql.String},
		{"array", graphql.String},
	}

	for _, tt := range tests {
		t.Run(tt.oasType, func(t *testing.T) {
			schema := credSchema()
			schema.Type = tt.oasType
			assert.Equal(t, tt.want, scalarType(schema))
		})
	}
}
