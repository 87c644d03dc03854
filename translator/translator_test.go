package translator

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgraph/preprocess"
)

func petstoreDoc() *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.0",
		Info:    &openapi3.Info{Title: "Pet Store", Version: "1.0.0"},
		Components: &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				"PetKey": &openapi3.SecuritySchemeRef{
					Value: &openapi3.SecurityScheme{Type: "apiKey", Name: "X-Pet-Key", In: "header"},
				},
				"StoreBasic": &openapi3.SecuritySchemeRef{
					Value: &openapi3.SecurityScheme{Type: "http", Scheme: "basic"},
				},
			},
		},
		Paths: openapi3.Paths{
			"/pets": &openapi3.PathItem{
				Get: &openapi3.Operation{
					OperationID: "listPets",
					Security:    &openapi3.SecurityRequirements{{"PetKey": []string{}}},
				},
				Post: &openapi3.Operation{
					OperationID: "createPet",
					Security:    &openapi3.SecurityRequirements{{"StoreBasic": []string{}}},
				},
			},
			"/status": &openapi3.PathItem{
				Get: &openapi3.Operation{OperationID: "status"},
			},
		},
	}
}

func TestTranslateRootFields(t *testing.T) {
	schema, err := Translate([]*openapi3.T{petstoreDoc()})
	require.NoError(t, err)

	queryFields := schema.QueryType().Fields()
	assert.Contains(t, queryFields, "status", "unauthenticated operations stay at the root")
	assert.Contains(t, queryFields, "viewerApiKey")
	assert.Contains(t, queryFields, "viewerAnyAuth")
	assert.NotContains(t, queryFields, "listPets", "authenticated operations live under viewers only")

	require.NotNil(t, schema.MutationType())
	mutationFields := schema.MutationType().Fields()
	assert.Contains(t, mutationFields, "mutationViewerBasicAuth")
	assert.Contains(t, mutationFields, "mutationViewerAnyAuth")
	assert.NotContains(t, mutationFields, "createPet")
}

func TestTranslateExecutesViewerQuery(t *testing.T) {
	schema, err := Translate([]*openapi3.T{petstoreDoc()})
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema: schema,
		RequestString: `{
			viewerApiKey(apiKey: "secret") {
				listPets {
					operationId
					method
					path
					authenticatedWith
				}
			}
		}`,
	})
	require.Empty(t, result.Errors)

	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	viewer, ok := data["viewerApiKey"].(map[string]interface{})
	require.True(t, ok)
	op, ok := viewer["listPets"].(map[string]interface{})
	require.True(t, ok)

	assert.Equal(t, "listPets", op["operationId"])
	assert.Equal(t, "GET", op["method"])
	assert.Equal(t, "/pets", op["path"])
	assert.Equal(t, []interface{}{"petKey"}, op["authenticatedWith"],
		"resolver should surface the sanitized scheme name credentials were supplied for")
}

func TestTranslateExecutesAnyAuthQuery(t *testing.T) {
	schema, err := Translate([]*openapi3.T{petstoreDoc()})
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema: schema,
		RequestString: `{
			viewerAnyAuth(petKey: {apiKey: "secret"}) {
				listPets {
					authenticatedWith
				}
			}
		}`,
	})
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	viewer := data["viewerAnyAuth"].(map[string]interface{})
	op := viewer["listPets"].(map[string]interface{})
	assert.Equal(t, []interface{}{"petKey"}, op["authenticatedWith"])
}

func TestTranslateUnauthenticatedFieldHasNoContext(t *testing.T) {
	schema, err := Translate([]*openapi3.T{petstoreDoc()})
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ status { operationId authenticatedWith } }`,
	})
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	op := data["status"].(map[string]interface{})
	assert.Equal(t, "status", op["operationId"])
	assert.Nil(t, op["authenticatedWith"], "no viewer wrapped this field")
}

func TestTranslateViewersDisabled(t *testing.T) {
	schema, err := Translate([]*openapi3.T{petstoreDoc()}, WithViewersDisabled())
	require.NoError(t, err)

	queryFields := schema.QueryType().Fields()
	assert.Contains(t, queryFields, "listPets")
	assert.NotContains(t, queryFields, "viewerApiKey")
	assert.NotContains(t, queryFields, "viewerAnyAuth")

	require.NotNil(t, schema.MutationType())
	assert.Contains(t, schema.MutationType().Fields(), "createPet")
}

func TestTranslateStrictWarnings(t *testing.T) {
	doc := petstoreDoc()
	doc.Components.SecuritySchemes["LegacyDigest"] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{Type: "http", Scheme: "digest"},
	}
	doc.Paths["/legacy"] = &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "legacy",
			Security:    &openapi3.SecurityRequirements{{"LegacyDigest": []string{}}},
		},
	}

	_, err := Translate([]*openapi3.T{doc})
	assert.NoError(t, err, "warnings are non-fatal by default")

	_, err = Translate([]*openapi3.T{doc}, WithStrictWarnings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(preprocess.WarnUnsupportedHTTPScheme))
}

func TestTranslateNoOperations(t *testing.T) {
	doc := &openapi3.T{Info: &openapi3.Info{Title: "Empty", Version: "0"}}

	_, err := Translate([]*openapi3.T{doc})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no query fields")
}

func TestTranslateMultiDocumentDescriptions(t *testing.T) {
	second := &openapi3.T{
		OpenAPI: "3.0.0",
		Info:    &openapi3.Info{Title: "Admin API", Version: "1.0.0"},
		Components: &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				"AdminKey": &openapi3.SecuritySchemeRef{
					Value: &openapi3.SecurityScheme{Type: "apiKey", Name: "X-Admin", In: "header"},
				},
			},
		},
		Paths: openapi3.Paths{
			"/admin": &openapi3.PathItem{
				Get: &openapi3.Operation{
					OperationID: "adminStatus",
					Security:    &openapi3.SecurityRequirements{{"AdminKey": []string{}}},
				},
			},
		},
	}

	schema, err := Translate([]*openapi3.T{petstoreDoc(), second})
	require.NoError(t, err)

	fields := schema.QueryType().Fields()
	require.Contains(t, fields, "viewerApiKey2", "same-kind schemes across documents get suffixed names")

	desc := fields["viewerApiKey2"].Description
	assert.Contains(t, desc, "Admin API", "multi-document descriptions name the owning document")
	assert.Contains(t, desc, "AdminKey")
}

func TestTranslateDuplicateOperationIDs(t *testing.T) {
	doc := petstoreDoc()
	doc.Paths["/status2"] = &openapi3.PathItem{
		Get: &openapi3.Operation{OperationID: "status"},
	}

	schema, err := Translate([]*openapi3.T{doc})
	require.NoError(t, err)

	fields := schema.QueryType().Fields()
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "status2", "colliding operation ids are disambiguated")
}
