// Package translator assembles a GraphQL schema from preprocessed OpenAPI
// data. Operations become query or mutation fields; declared security
// schemes become synthetic "viewer" root fields that accept credentials as
// arguments and inject them, under a reserved key, into the context the
// nested operation fields resolve against.
//
// Per-protocol viewers keep their scheme's declared credential order and are
// named deterministically per auth kind (viewerBasicAuth, viewerApiKey2,
// mutationViewerBasicAuth, ...). A composite AnyAuth viewer additionally
// spans every declared scheme, with one input-typed argument per scheme in
// sorted order.
//
// Construction runs once, synchronously, at schema-build time. The produced
// schema and all resolvers are immutable and safe for concurrent request
// execution.
package translator
