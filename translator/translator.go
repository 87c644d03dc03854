package translator

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/graphql-go/graphql"

	"github.com/erraggy/oasgraph/preprocess"
)

// Translator builds a GraphQL schema from preprocessed OpenAPI data. One
// Translator serves one schema build; it is not safe for concurrent use
// during construction, but every schema and resolver it produces is.
type Translator struct {
	data *preprocess.Data
	cfg  config

	inputTypes    map[string]*graphql.InputObject
	usedTypeNames map[string]struct{}
	opResultType  *graphql.Object
}

// New creates a Translator over already preprocessed data.
func New(data *preprocess.Data, opts ...Option) *Translator {
	return &Translator{
		data:          data,
		cfg:           newConfig(opts),
		inputTypes:    make(map[string]*graphql.InputObject),
		usedTypeNames: make(map[string]struct{}),
	}
}

// Translate preprocesses the given documents and assembles a GraphQL schema
// in one step. It is the package's main entry point:
//
//	schema, err := translator.Translate([]*openapi3.T{doc},
//		translator.WithLogger(logger))
func Translate(docs []*openapi3.T, opts ...Option) (graphql.Schema, error) {
	cfg := newConfig(opts)
	data := preprocess.Process(docs, cfg.logger)
	t := New(data, opts...)
	return t.Schema()
}

// Data exposes the preprocessed data backing this translator.
func (t *Translator) Data() *preprocess.Data {
	return t.data
}

// Schema assembles the schema: operation fields are built in preprocessed
// order, authenticated fields are grouped by security scheme and handed to
// the viewer orchestrator, and viewers plus unauthenticated fields become
// root fields. Mutation mode only changes viewer name prefixes and which
// root object fields land on.
func (t *Translator) Schema() (graphql.Schema, error) {
	queryFields := graphql.Fields{}
	mutationFields := graphql.Fields{}
	queryGroups := newFieldGroups()
	mutationGroups := newFieldGroups()

	// Root field names must be unique per root object; the viewer name
	// allocator doubles as the dedupe registry with the root as the kind.
	alloc := newNameAllocator()

	for _, op := range t.data.Operations {
		rootKind := "query"
		root, groups := queryFields, queryGroups
		if op.Mutation {
			rootKind = "mutation"
			root, groups = mutationFields, mutationGroups
		}

		name := alloc.allocate(rootKind, op.OperationID)
		field := t.operationField(op)

		if len(op.SecuritySchemes) > 0 && t.cfg.viewers {
			for _, protocol := range op.SecuritySchemes {
				groups.add(protocol, name, field)
			}
			continue
		}
		root[name] = field
	}

	if t.cfg.viewers {
		installViewers(queryFields, t.CreateViewers(queryGroups.list(), false))
		installViewers(mutationFields, t.CreateViewers(mutationGroups.list(), true))
	}

	if len(queryFields) == 0 {
		return graphql.Schema{}, fmt.Errorf("translator: no query fields; the source documents declare no operations")
	}

	schemaConfig := graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Query",
			Fields: queryFields,
		}),
	}
	if len(mutationFields) > 0 {
		schemaConfig.Mutation = graphql.NewObject(graphql.ObjectConfig{
			Name:   "Mutation",
			Fields: mutationFields,
		})
	}

	schema, err := graphql.NewSchema(schemaConfig)
	if err != nil {
		return schema, fmt.Errorf("translator: assembling schema: %w", err)
	}

	if t.cfg.strict && len(t.data.Warnings) > 0 {
		return schema, t.warningsError()
	}
	return schema, nil
}

func (t *Translator) warningsError() error {
	msgs := make([]string, len(t.data.Warnings))
	for i, w := range t.data.Warnings {
		msgs[i] = w.String()
	}
	return fmt.Errorf("translator: %d warning(s) in strict mode: %s", len(msgs), strings.Join(msgs, "; "))
}

// installViewers adds each viewer of the set as a root field under its
// allocated name.
func installViewers(root graphql.Fields, viewers *ViewerSet) {
	for _, name := range viewers.Names() {
		root[name] = viewers.Get(name).Field()
	}
}

// fieldGroups accumulates operation fields per security scheme while keeping
// first-seen protocol order, so the orchestrator iterates a stated order
// rather than a map's.
type fieldGroups struct {
	order      []string
	byProtocol map[string]graphql.Fields
}

func newFieldGroups() *fieldGroups {
	return &fieldGroups{byProtocol: make(map[string]graphql.Fields)}
}

func (g *fieldGroups) add(protocol, name string, field *graphql.Field) {
	fields, ok := g.byProtocol[protocol]
	if !ok {
		fields = graphql.Fields{}
		g.byProtocol[protocol] = fields
		g.order = append(g.order, protocol)
	}
	fields[name] = field
}

func (g *fieldGroups) list() []ProtocolFields {
	out := make([]ProtocolFields, len(g.order))
	for i, protocol := range g.order {
		out[i] = ProtocolFields{Protocol: protocol, Fields: g.byProtocol[protocol]}
	}
	return out
}
