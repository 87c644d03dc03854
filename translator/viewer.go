package translator

import (
	"fmt"
	"sort"

	"github.com/graphql-go/graphql"

	"github.com/erraggy/oasgraph/preprocess"
)

// SecurityContextKey is the reserved key viewer resolvers nest credential
// data under. It is never exposed as a schema field; operation resolvers
// check it on their parent value to learn whether a viewer was used and
// which credentials were supplied.
const SecurityContextKey = "_oasgraph"

// Fixed root-field names for the composite viewers. They use a camelCased
// two-word prefix while per-protocol viewers derive from a single auth kind,
// so the allocator can never hand them out for a declared scheme.
const (
	anyAuthQueryName    = "viewerAnyAuth"
	anyAuthMutationName = "mutationViewerAnyAuth"
)

// Argument is one named viewer argument. Viewers carry their arguments as an
// ordered slice rather than the unordered graphql.FieldConfigArgument map
// because argument order is part of the produced contract: per-protocol
// viewers keep declared credential order, the AnyAuth viewer sorts by name.
type Argument struct {
	Name   string
	Config *graphql.ArgumentConfig
}

// ArgumentList is an ordered set of viewer arguments.
type ArgumentList []Argument

// FieldConfigArgument converts the list to the map form graphql-go expects.
func (l ArgumentList) FieldConfigArgument() graphql.FieldConfigArgument {
	out := make(graphql.FieldConfigArgument, len(l))
	for _, a := range l {
		out[a.Name] = a.Config
	}
	return out
}

// Names returns the argument names in list order.
func (l ArgumentList) Names() []string {
	out := make([]string, len(l))
	for i, a := range l {
		out[i] = a.Name
	}
	return out
}

// Viewer is a synthetic root field that accepts credentials as arguments and
// injects them, under SecurityContextKey, into the context its nested
// operation fields resolve against. Viewers are immutable once built and
// their Resolve functions are safe for concurrent use: each invocation reads
// only the enclosing immutable configuration and its own arguments.
type Viewer struct {
	// Type is the object type wrapping the viewer's downstream fields.
	Type *graphql.Object

	// Args are the viewer's arguments in contract order.
	Args ArgumentList

	// Resolve builds the security context from the supplied arguments.
	Resolve graphql.FieldResolveFn

	// Description is the human-readable viewer description.
	Description string
}

// Field renders the viewer as a root field usable in a graphql.Fields map.
func (v *Viewer) Field() *graphql.Field {
	return &graphql.Field{
		Type:        v.Type,
		Args:        v.Args.FieldConfigArgument(),
		Resolve:     v.Resolve,
		Description: v.Description,
	}
}

// ViewerSet is the ordered name -> Viewer mapping one orchestration run
// produces. Order follows insertion: per-protocol viewers first, the AnyAuth
// viewer last.
type ViewerSet struct {
	order  []string
	byName map[string]*Viewer
}

func newViewerSet() *ViewerSet {
	return &ViewerSet{byName: make(map[string]*Viewer)}
}

func (s *ViewerSet) add(name string, v *Viewer) {
	if _, ok := s.byName[name]; !ok {
		s.order = append(s.order, name)
	}
	s.byName[name] = v
}

// Get returns the viewer registered under name, or nil.
func (s *ViewerSet) Get(name string) *Viewer {
	return s.byName[name]
}

// Names returns the viewer names in insertion order.
func (s *ViewerSet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of viewers in the set.
func (s *ViewerSet) Len() int {
	return len(s.order)
}

// ProtocolFields pairs one security scheme's raw name with the operation
// fields that require its credentials. The translator hands the orchestrator
// a slice rather than a map so that iteration order is explicit.
type ProtocolFields struct {
	Protocol string
	Fields   graphql.Fields
}

// nameAllocator hands out viewer names that are unique within an auth kind.
// Its registry lives for one orchestration run.
type nameAllocator struct {
	used map[string]map[string]struct{}
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{used: make(map[string]map[string]struct{})}
}

// reserve marks name as taken under kind without handing it out.
func (a *nameAllocator) reserve(kind, name string) {
	set := a.used[kind]
	if set == nil {
		set = make(map[string]struct{})
		a.used[kind] = set
	}
	set[name] = struct{}{}
}

// allocate sanitizes base to camelCase and records it under kind. On a
// collision it probes numeric suffixes starting at 2 until an unused
// candidate is found, so the first duplicate always becomes "<name>2" no
// matter how many unrelated names share the kind.
func (a *nameAllocator) allocate(kind, base string) string {
	name := preprocess.Sanitize(base, preprocess.CaseCamel)
	set := a.used[kind]
	if set == nil {
		set = make(map[string]struct{})
		a.used[kind] = set
	}
	if _, taken := set[name]; taken {
		for i := 2; ; i++ {
			candidate := fmt.Sprintf("%s%d", name, i)
			if _, taken := set[candidate]; !taken {
				name = candidate
				break
			}
		}
	}
	set[name] = struct{}{}
	return name
}

// authKind maps a security scheme definition to the canonical label viewers
// are classified and namespaced by. Non-http types classify as themselves.
// For http, only the basic sub-scheme has a dedicated kind; anything else
// falls back to the generic httpAuth label with one warning per occurrence.
func (t *Translator) authKind(scheme *preprocess.SecurityScheme) string {
	def := scheme.Def
	if def.Type != "http" {
		return def.Type
	}
	switch def.Scheme {
	case "basic":
		return "basicAuth"
	default:
		t.data.Warn(preprocess.WarnUnsupportedHTTPScheme, scheme.RawName,
			fmt.Sprintf("http security scheme %q is not supported; treating as generic httpAuth", def.Scheme))
		return "httpAuth"
	}
}

// CreateViewers is the viewer orchestrator. For each protocol in groups it
// classifies the scheme, allocates a unique viewer name, and builds a viewer
// wrapping that protocol's fields; it then builds the composite AnyAuth
// viewer over the union of all fields. For N protocols the returned set
// holds N+1 viewers. Later protocols win when field names repeat; that
// map-merge semantics is deliberate.
func (t *Translator) CreateViewers(groups []ProtocolFields, mutation bool) *ViewerSet {
	viewers := newViewerSet()
	if len(groups) == 0 {
		return viewers
	}

	alloc := newNameAllocator()
	// The composite viewer's fixed name must survive even a scheme whose
	// kind sanitizes to the same prefix.
	alloc.reserve("anyAuth", anyAuthQueryName)
	alloc.reserve("anyAuth", anyAuthMutationName)
	allFields := graphql.Fields{}

	for _, group := range groups {
		scheme := t.data.Security.Get(group.Protocol)
		if scheme == nil {
			// Preprocessing guarantees an entry per referenced protocol;
			// a miss is a precondition failure upstream, not ours.
			continue
		}

		for name, field := range group.Fields {
			allFields[name] = field
		}

		kind := t.authKind(scheme)
		base := "viewer " + kind
		if mutation {
			base = "mutation viewer " + kind
		}
		name := alloc.allocate(kind, base)
		viewers.add(name, t.newViewer(name, scheme, kind, group.Fields))
	}

	name := anyAuthQueryName
	if mutation {
		name = anyAuthMutationName
	}
	viewers.add(name, t.newAnyAuthViewer(name, allFields))

	return viewers
}

// newViewer builds the viewer for a single protocol. Arguments follow the
// scheme's declared credential order, every one a required string. The
// wrapped object's fields materialize lazily so they may reference types
// that are not finalized yet.
func (t *Translator) newViewer(name string, scheme *preprocess.SecurityScheme, kind string, fields graphql.Fields) *Viewer {
	args := make(ArgumentList, 0, len(scheme.Parameters))
	for _, p := range scheme.Parameters {
		args = append(args, Argument{
			Name: p.Name,
			Config: &graphql.ArgumentConfig{
				Type:        graphql.NewNonNull(graphql.String),
				Description: p.Description,
			},
		})
	}

	saneName := preprocess.SanitizeAndStore(scheme.RawName, t.data.SaneMap)

	return &Viewer{
		Type: graphql.NewObject(graphql.ObjectConfig{
			Name:        preprocess.Sanitize(name, preprocess.CasePascal),
			Fields:      graphql.FieldsThunk(func() graphql.Fields { return fields }),
			Description: fmt.Sprintf("Wraps operations authenticated via %s.", scheme.RawName),
		}),
		Args:        args,
		Resolve:     viewerResolver(saneName),
		Description: t.viewerDescription(scheme, kind),
	}
}

// viewerDescription names the protocol and its kind; with multiple source
// documents it additionally names the owning document so same-named schemes
// stay distinguishable.
func (t *Translator) viewerDescription(scheme *preprocess.SecurityScheme, kind string) string {
	if len(t.data.Documents) <= 1 {
		return fmt.Sprintf("A viewer for operations authenticated via %s (%s).", scheme.RawName, kind)
	}
	title := ""
	if scheme.Document != nil && scheme.Document.Info != nil {
		title = scheme.Document.Info.Title
	}
	return fmt.Sprintf("A viewer for operations authenticated via the security scheme %q (%s) declared by %q.",
		scheme.RawName, kind, title)
}

// newAnyAuthViewer builds the composite viewer spanning every declared
// scheme. It takes one argument per protocol, typed by the protocol's
// credentials input type and keyed by its sanitized name; the argument list
// is sorted by name because a mixed-protocol viewer has no meaningful
// declared order and sorted output is reproducible across builds.
func (t *Translator) newAnyAuthViewer(name string, fields graphql.Fields) *Viewer {
	args := make(ArgumentList, 0, t.data.Security.Len())
	for _, protocol := range t.data.Security.Names() {
		scheme := t.data.Security.Get(protocol)
		saneName := preprocess.SanitizeAndStore(scheme.RawName, t.data.SaneMap)
		args = append(args, Argument{
			Name: saneName,
			Config: &graphql.ArgumentConfig{
				Type:        t.credentialsInputType(scheme),
				Description: fmt.Sprintf("Credentials for %s", scheme.RawName),
			},
		})
	}
	sort.Slice(args, func(i, j int) bool { return args[i].Name < args[j].Name })

	return &Viewer{
		Type: graphql.NewObject(graphql.ObjectConfig{
			Name:        preprocess.Sanitize(name, preprocess.CasePascal),
			Fields:      graphql.FieldsThunk(func() graphql.Fields { return fields }),
			Description: "Wraps operations behind any combination of declared security schemes.",
		}),
		Args:    args,
		Resolve: anyAuthResolver(),
		Description: "A viewer accepting credentials for any declared security scheme. " +
			"Operations underneath only honor the schemes they declare, so not every " +
			"request will succeed with an arbitrary credential combination.",
	}
}

// viewerResolver returns the resolver for a per-protocol viewer. The
// resolver is a pure function over the sanitized protocol name captured at
// build time: it nests the supplied arguments under that name inside the
// reserved security context key and touches no shared state.
func viewerResolver(saneName string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		return map[string]interface{}{
			SecurityContextKey: map[string]interface{}{
				"security": map[string]interface{}{
					saneName: p.Args,
				},
			},
		}, nil
	}
}

// anyAuthResolver returns the resolver for the AnyAuth viewer. The argument
// map already is the full per-protocol credential mapping, so it sits
// directly under the security key.
func anyAuthResolver() graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		return map[string]interface{}{
			SecurityContextKey: map[string]interface{}{
				"security": p.Args,
			},
		}, nil
	}
}
