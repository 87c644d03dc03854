package preprocess

import "fmt"

// WarningCode identifies a category of non-fatal translation diagnostics.
//
// Warnings never abort translation: the affected element is degraded or
// skipped and processing continues. Callers that want hard failures can
// inspect Data.Warnings (the translator exposes a strict option for this).
type WarningCode string

const (
	// WarnUnsupportedHTTPScheme is emitted for http security schemes whose
	// sub-scheme is neither "basic" nor otherwise supported (e.g. "digest").
	// The scheme still receives a viewer under the generic httpAuth kind.
	WarnUnsupportedHTTPScheme WarningCode = "UNSUPPORTED_HTTP_SECURITY_SCHEME"

	// WarnUnsupportedSecurityScheme is emitted for security scheme types
	// outside the OpenAPI vocabulary. Credentials are carried opaquely.
	WarnUnsupportedSecurityScheme WarningCode = "UNSUPPORTED_SECURITY_SCHEME"

	// WarnMissingOperationID is emitted when an operation declares no
	// operationId and a field name must be derived from method and path.
	WarnMissingOperationID WarningCode = "MISSING_OPERATION_ID"

	// WarnUnresolvedSecurityScheme is emitted when an operation references a
	// security scheme the source documents never declare.
	WarnUnresolvedSecurityScheme WarningCode = "UNRESOLVED_SECURITY_SCHEME"
)

// Warning is one non-fatal diagnostic collected during translation.
type Warning struct {
	// Code is the warning category.
	Code WarningCode

	// Message describes the individual occurrence.
	Message string

	// Location names the element the warning concerns, e.g. a security
	// scheme name or an operation's method and path.
	Location string
}

// String renders the warning for human consumption.
func (w Warning) String() string {
	if w.Location == "" {
		return fmt.Sprintf("%s: %s", w.Code, w.Message)
	}
	return fmt.Sprintf("%s at %s: %s", w.Code, w.Location, w.Message)
}

// Warn records a warning on the data and forwards it to the logger.
func (d *Data) Warn(code WarningCode, location, message string) {
	d.Warnings = append(d.Warnings, Warning{Code: code, Message: message, Location: location})
	d.Logger.Warn(message, "code", string(code), "location", location)
}
