package ofx

// Dialect values accepted by Schema.SupportedVersion.
const (
	DialectSGML = "sgml"
	DialectXML  = "xml"
)

// Transaction-kind domains accepted by Schema.TransactionKind.
const (
	KindBankTransaction = "banktranlist"
	KindInvTransaction  = "invtranlist"
	KindSecurity        = "seclist"
	KindPosition        = "invposlist"
)

// Schema is the validation dictionary the parser is constructed with. It maps
// each aggregate tag to a field schema, coerces list-item tags to transaction
// kinds, and supplies the header constants. Implementations must be safe for
// concurrent readers; the parser never writes to its schema.
type Schema interface {
	// ValidateAggregate coerces the leaves of the named aggregate, keyed by
	// lowercased child tag, into typed values. It fails when a required field
	// is absent, an unknown field is present, or a value does not match its
	// per-field schema.
	ValidateAggregate(tag string, leaves map[string]string) (map[string]any, error)

	// TransactionKind coerces a list-item tag into its kind within the given
	// domain (one of the Kind* constants).
	TransactionKind(domain, tag string) (string, error)

	// HeaderFields returns the ordered v1 header field list prescribed for an
	// OFXHEADER version.
	HeaderFields(headerVersion string) ([]string, error)

	// SupportedVersion reports whether a VERSION header value is accepted for
	// the dialect (DialectSGML or DialectXML).
	SupportedVersion(dialect, version string) bool
}
