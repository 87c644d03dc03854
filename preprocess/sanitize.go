package preprocess

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaseStyle selects the identifier convention Sanitize produces.
type CaseStyle int

const (
	// CaseSimple joins the alphanumeric parts of the input without changing
	// their casing. Example: "basic auth" -> "basicauth".
	CaseSimple CaseStyle = iota

	// CaseCamel produces camelCase. Example: "mutation viewer basicAuth" ->
	// "mutationViewerBasicAuth".
	CaseCamel

	// CasePascal produces PascalCase. Example: "viewer anyAuth" -> "ViewerAnyAuth".
	CasePascal

	// CaseAllCaps produces underscore-separated upper case.
	// Example: "apiKey auth" -> "API_KEY_AUTH" is not attempted; parts are
	// upper-cased as-is: "APIKEY_AUTH".
	CaseAllCaps
)

// upperCaser performs locale-aware upper casing for CaseAllCaps.
// strings.ToUpper would mostly do, but cases handles special mappings.
var upperCaser = cases.Upper(language.English)

// Sanitize normalizes raw into a name that is safe to use as a GraphQL
// identifier. Characters outside [A-Za-z0-9] split the input into parts,
// the parts are joined according to style, and leading digits are stripped
// because identifiers must not start with a digit.
//
// Casing inside a part is preserved for the camel and pascal styles, so
// "basicAuth" keeps its interior capital rather than collapsing to
// "Basicauth".
func Sanitize(raw string, style CaseStyle) string {
	// GraphQL names are ASCII; anything else separates parts.
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return !isASCIIAlnum(r)
	})

	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		switch style {
		case CaseCamel:
			if b.Len() == 0 {
				p = lowerFirst(p)
			} else {
				p = upperFirst(p)
			}
		case CasePascal:
			p = upperFirst(p)
		case CaseAllCaps:
			if i > 0 {
				b.WriteByte('_')
			}
			p = upperCaser.String(p)
		}
		b.WriteString(p)
	}

	return strings.TrimLeft(b.String(), "0123456789")
}

// SanitizeAndStore sanitizes raw to camelCase and records the reverse
// mapping sane -> raw in table so later stages can recover the original
// name. If the sanitized name is already registered for a different raw
// string, a numeric suffix is probed until a free name is found; repeated
// calls with the same raw string always return the same sanitized name.
func SanitizeAndStore(raw string, table map[string]string) string {
	sane := Sanitize(raw, CaseCamel)
	name := sane
	for i := 2; ; i++ {
		existing, taken := table[name]
		if !taken || existing == raw {
			break
		}
		name = fmt.Sprintf("%s%d", sane, i)
	}
	table[name] = raw
	return name
}

func isASCIIAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
