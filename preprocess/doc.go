// Package preprocess turns parsed OpenAPI descriptions into the fixed input
// the translator consumes: an ordered registry of processed security schemes,
// a deterministic operation list, and a reversible sanitized-name table.
//
// Parsing itself is not this package's concern; callers hand in already
// loaded *openapi3.T documents (see github.com/getkin/kin-openapi). All maps
// encountered in the source model are visited in sorted order so that a given
// set of documents always preprocesses to the same Data.
//
// The package also defines the Logger interface and the non-fatal Warning
// channel shared by the preprocessing and translation stages.
package preprocess
