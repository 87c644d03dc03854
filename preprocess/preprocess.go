package preprocess

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Operation is one callable operation extracted from a source document.
type Operation struct {
	// OperationID is the declared operationId or, when absent, a name
	// derived from the method and path.
	OperationID string

	// Method is the upper-case HTTP method.
	Method string

	// Path is the path template the operation lives under.
	Path string

	// Description is the operation's summary or description text.
	Description string

	// Document is the description that declared the operation.
	Document *openapi3.T

	// SecuritySchemes lists the raw names of the security schemes the
	// operation accepts. Empty for unauthenticated operations.
	SecuritySchemes []string

	// Mutation reports whether the operation mutates state. GET resolves
	// to query fields, all other methods to mutation fields.
	Mutation bool
}

// Data is the outcome of preprocessing: everything the translator needs,
// fixed before schema construction starts. One Data value serves exactly one
// schema build and is not mutated concurrently.
type Data struct {
	// Documents are the source descriptions, in the order supplied.
	Documents []*openapi3.T

	// Security is the ordered registry of processed security schemes.
	Security *SecuritySchemes

	// Operations are the extracted operations in deterministic order
	// (documents in supplied order, paths and methods sorted).
	Operations []*Operation

	// SaneMap maps sanitized names back to the raw names they came from,
	// so downstream resolvers can recover original protocol names.
	SaneMap map[string]string

	// Warnings accumulates the non-fatal diagnostics of this build.
	Warnings []Warning

	// Logger receives diagnostics as they occur.
	Logger Logger
}

// Process extracts security schemes and operations from the given documents.
// logger may be nil, in which case diagnostics are discarded.
func Process(docs []*openapi3.T, logger Logger) *Data {
	if logger == nil {
		logger = NopLogger{}
	}
	d := &Data{
		Documents: docs,
		Security:  NewSecuritySchemes(),
		SaneMap:   make(map[string]string),
		Logger:    logger,
	}

	for _, doc := range docs {
		d.processSecuritySchemes(doc)
	}
	for _, doc := range docs {
		d.processOperations(doc)
	}

	return d
}

// processOperations walks a document's paths in sorted order and extracts
// every operation. Path and method maps are unordered in the source model,
// so sorting keeps the operation list reproducible.
func (d *Data) processOperations(doc *openapi3.T) {
	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for m := range ops {
			methods = append(methods, m)
		}
		sort.Strings(methods)

		for _, method := range methods {
			d.Operations = append(d.Operations, d.processOperation(doc, path, method, ops[method]))
		}
	}
}

func (d *Data) processOperation(doc *openapi3.T, path, method string, op *openapi3.Operation) *Operation {
	location := fmt.Sprintf("%s %s", method, path)

	id := op.OperationID
	if id == "" {
		id = fmt.Sprintf("%s %s", strings.ToLower(method), path)
		d.Warn(WarnMissingOperationID, location,
			fmt.Sprintf("operation declares no operationId; using %q", id))
	}

	desc := op.Summary
	if desc == "" {
		desc = op.Description
	}

	return &Operation{
		OperationID:     id,
		Method:          method,
		Path:            path,
		Description:     desc,
		Document:        doc,
		SecuritySchemes: d.operationSecurity(doc, op, location),
		Mutation:        method != "GET",
	}
}

// operationSecurity resolves the security scheme names an operation accepts.
// Operation-level requirements override document-level ones. Requirement
// entries are unordered maps, so names are sorted within each requirement;
// duplicates across requirements are dropped.
func (d *Data) operationSecurity(doc *openapi3.T, op *openapi3.Operation, location string) []string {
	requirements := doc.Security
	if op.Security != nil {
		requirements = *op.Security
	}

	var names []string
	seen := make(map[string]struct{})
	for _, req := range requirements {
		keys := make([]string, 0, len(req))
		for name := range req {
			keys = append(keys, name)
		}
		sort.Strings(keys)
		for _, name := range keys {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			if d.Security.Get(name) == nil {
				d.Warn(WarnUnresolvedSecurityScheme, location,
					fmt.Sprintf("operation references undeclared security scheme %q", name))
				continue
			}
			names = append(names, name)
		}
	}
	return names
}
