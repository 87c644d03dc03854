package preprocess

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// CredentialParameter is one credential a security scheme expects from the
// caller, e.g. username or apiKey. Parameter order is semantically visible
// (generated docs show username before password), so schemes carry their
// parameters as an ordered slice.
type CredentialParameter struct {
	Name        string
	Description string
}

// SecurityScheme is the processed form of one declared security scheme.
// It is immutable after preprocessing; the translator only reads it.
type SecurityScheme struct {
	// RawName is the name the source document declared the scheme under.
	RawName string

	// Def is the underlying OpenAPI security scheme definition.
	Def *openapi3.SecurityScheme

	// Document is the description that declared the scheme. Only its info
	// block is consulted, for disambiguating description text.
	Document *openapi3.T

	// Parameters are the credentials the scheme expects, in declared order.
	Parameters []CredentialParameter

	// Schema describes the credential shape structurally. The translator
	// derives the AnyAuth viewer's input types from it.
	Schema *openapi3.Schema
}

// SecuritySchemes is an ordered scheme-name registry. Iteration order is a
// stated contract: schemes come back in the order they were added, so the
// translator's output is reproducible across builds.
type SecuritySchemes struct {
	order  []string
	byName map[string]*SecurityScheme
}

// NewSecuritySchemes returns an empty registry.
func NewSecuritySchemes() *SecuritySchemes {
	return &SecuritySchemes{byName: make(map[string]*SecurityScheme)}
}

// Add registers a scheme under its raw name. Re-adding a name replaces the
// scheme but keeps its original position.
func (s *SecuritySchemes) Add(scheme *SecurityScheme) {
	if _, ok := s.byName[scheme.RawName]; !ok {
		s.order = append(s.order, scheme.RawName)
	}
	s.byName[scheme.RawName] = scheme
}

// Get returns the scheme registered under name, or nil.
func (s *SecuritySchemes) Get(name string) *SecurityScheme {
	return s.byName[name]
}

// Names returns the registered names in insertion order.
func (s *SecuritySchemes) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of registered schemes.
func (s *SecuritySchemes) Len() int {
	return len(s.order)
}

// processSecuritySchemes extracts every security scheme a document declares.
// Component maps are unordered in the source model, so names are visited in
// sorted order to keep ingestion deterministic.
func (d *Data) processSecuritySchemes(doc *openapi3.T) {
	if doc.Components == nil || len(doc.Components.SecuritySchemes) == 0 {
		return
	}

	names := make([]string, 0, len(doc.Components.SecuritySchemes))
	for name := range doc.Components.SecuritySchemes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := doc.Components.SecuritySchemes[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		d.Security.Add(d.processScheme(name, ref.Value, doc))
	}
}

// processScheme derives the credential parameters and credential schema for
// one declared scheme. Unknown types still produce a usable scheme with an
// opaque token credential; classification warnings belong to the translator.
func (d *Data) processScheme(name string, def *openapi3.SecurityScheme, doc *openapi3.T) *SecurityScheme {
	var params []CredentialParameter

	switch def.Type {
	case "apiKey":
		params = []CredentialParameter{
			{Name: "apiKey", Description: fmt.Sprintf("API key sent as the %q %s parameter", def.Name, def.In)},
		}
	case "http":
		switch def.Scheme {
		case "basic":
			params = []CredentialParameter{
				{Name: "username", Description: "Username for basic authentication"},
				{Name: "password", Description: "Password for basic authentication"},
			}
		default:
			params = []CredentialParameter{
				{Name: "token", Description: fmt.Sprintf("Credential for the http %q scheme", def.Scheme)},
			}
		}
	case "oauth2", "openIdConnect":
		params = []CredentialParameter{
			{Name: "accessToken", Description: "Previously obtained access token"},
		}
	default:
		d.Warn(WarnUnsupportedSecurityScheme, name,
			fmt.Sprintf("security scheme type %q is not supported; credentials are carried opaquely", def.Type))
		params = []CredentialParameter{
			{Name: "token", Description: "Opaque credential"},
		}
	}

	return &SecurityScheme{
		RawName:    name,
		Def:        def,
		Document:   doc,
		Parameters: params,
		Schema:     credentialSchema(params),
	}
}

// credentialSchema builds the structural description of a credential shape:
// an object with one required string property per parameter.
func credentialSchema(params []CredentialParameter) *openapi3.Schema {
	schema := &openapi3.Schema{
		Type:       "object",
		Properties: make(openapi3.Schemas, len(params)),
	}
	for _, p := range params {
		schema.Properties[p.Name] = openapi3.NewSchemaRef("", &openapi3.Schema{
			Type:        "string",
			Description: p.Description,
		})
		schema.Required = append(schema.Required, p.Name)
	}
	return schema
}
