// Package oasgraph translates OpenAPI Specification (OAS) documents into
// GraphQL schemas.
//
// Operations declared by the source documents become query and mutation
// fields. Security schemes become synthetic "viewer" root fields: a caller
// supplies credentials once as viewer arguments, and the viewer injects them
// into the context every operation field nested underneath resolves against.
//
// # Overview
//
// The library consists of two primary packages:
//
//   - preprocess: extract security schemes and operations from parsed
//     OpenAPI documents into deterministic, ordered form
//   - translator: assemble the GraphQL schema, including per-protocol
//     viewers and the composite AnyAuth viewer
//
// Documents are loaded with github.com/getkin/kin-openapi; schema nodes are
// built with github.com/graphql-go/graphql.
//
// # Quick Start
//
//	loader := openapi3.NewLoader()
//	doc, err := loader.LoadFromFile("api.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	schema, err := translator.Translate([]*openapi3.T{doc})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result := graphql.Do(graphql.Params{
//		Schema:        schema,
//		RequestString: `{ viewerApiKey(apiKey: "secret") { getPets { operationId } } }`,
//	})
//
// The oasgraph CLI under cmd/oasgraph exposes the same pipeline as
// "oasgraph translate" and serves a schema over HTTP with "oasgraph serve".
package oasgraph
