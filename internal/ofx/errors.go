package ofx

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by the parsing pipeline.
var (
	// ErrEmptySource indicates the source hit EOF before any non-empty line.
	ErrEmptySource = errors.New("ofx: empty source")

	// ErrSyntax indicates the strict tree builder rejected the body. The
	// facade recovers it internally by retrying with the lenient builder, so
	// callers only see it when the lenient builder fails too.
	ErrSyntax = errors.New("ofx: syntax error")
)

// HeaderError indicates a header line that could not be understood.
type HeaderError struct {
	Line string
	Msg  string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("ofx: malformed header: %s: %q", e.Msg, e.Line)
}

// VersionError indicates a header field outside the accepted value sets.
type VersionError struct {
	Field string
	Value string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("ofx: unsupported %s %q", e.Field, e.Value)
}

// SchemaError indicates data that does not conform to the validation schema:
// a duplicate child name, a missing required field, an unknown field, or a
// value that failed type coercion. Tag names the offending aggregate or leaf.
type SchemaError struct {
	Tag string
	Msg string
	Err error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ofx: schema violation at %s: %v", e.Tag, e.Err)
	}
	return fmt.Sprintf("ofx: schema violation at %s: %s", e.Tag, e.Msg)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// UnresolvedSecurityError indicates a SECID that names no security declared
// in the document's SECLIST.
type UnresolvedSecurityError struct {
	UniqueIDType string
	UniqueID     string
}

func (e *UnresolvedSecurityError) Error() string {
	return fmt.Sprintf("ofx: unresolved security reference (%s, %s)", e.UniqueIDType, e.UniqueID)
}
