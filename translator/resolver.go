package translator

import (
	"sort"

	"github.com/graphql-go/graphql"

	"github.com/erraggy/oasgraph/preprocess"
)

// operationResultType is the shared result type for operation fields.
// Executing the upstream HTTP call is out of scope; operation fields surface
// the operation's identity and the credentials that reached them instead.
func (t *Translator) operationResultType() *graphql.Object {
	if t.opResultType == nil {
		t.opResultType = graphql.NewObject(graphql.ObjectConfig{
			Name:        "OperationResult",
			Description: "Identity of a translated operation and the security context it resolved under.",
			Fields: graphql.Fields{
				"operationId": &graphql.Field{Type: graphql.String},
				"method":      &graphql.Field{Type: graphql.String},
				"path":        &graphql.Field{Type: graphql.String},
				"description": &graphql.Field{Type: graphql.String},
				"authenticatedWith": &graphql.Field{
					Type:        graphql.NewList(graphql.String),
					Description: "Sanitized names of the security schemes credentials were supplied for.",
				},
			},
		})
	}
	return t.opResultType
}

// operationField renders one preprocessed operation as a GraphQL field.
func (t *Translator) operationField(op *preprocess.Operation) *graphql.Field {
	return &graphql.Field{
		Type:        t.operationResultType(),
		Description: op.Description,
		Resolve:     operationResolver(op.OperationID, op.Method, op.Path, op.Description),
	}
}

// operationResolver captures the operation's identity as immutable values at
// build time. At request time it reads the reserved security context key off
// the parent value a viewer resolver produced; resolved concurrently it
// shares no mutable state between invocations.
func operationResolver(id, method, path, description string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		// A typed-nil slice in the interface value serializes as an empty
		// list; unauthenticated fields must report null instead.
		var authenticatedWith interface{}
		if names := suppliedSchemes(p.Source); names != nil {
			authenticatedWith = names
		}
		return map[string]interface{}{
			"operationId":       id,
			"method":            method,
			"path":              path,
			"description":       description,
			"authenticatedWith": authenticatedWith,
		}, nil
	}
}

// suppliedSchemes extracts the sanitized scheme names present in the
// security context of a resolved parent value. A nil return means no viewer
// wrapped this field.
func suppliedSchemes(source interface{}) []string {
	parent, ok := source.(map[string]interface{})
	if !ok {
		return nil
	}
	reserved, ok := parent[SecurityContextKey].(map[string]interface{})
	if !ok {
		return nil
	}
	security, ok := reserved["security"].(map[string]interface{})
	if !ok {
		return nil
	}

	names := make([]string, 0, len(security))
	for name, credentials := range security {
		if credentials != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
