// Package schema is the validation dictionary for OFX aggregates: per-tag
// field schemas, transaction-kind domains, and the header constants. The
// parser consumes it through an interface and never mutates it, so a single
// Registry is safe to share across concurrent parses.
package schema

import "fmt"

// Registry implements the parser's Schema interface.
type Registry struct {
	aggregates   map[string]aggregate
	kinds        map[string]map[string]bool
	headerFields map[string][]string
	v1Versions   map[string]bool
	v2Versions   map[string]bool
}

// headerFields lists, per OFXHEADER version, the ordered field list a v1
// header must carry after the OFXHEADER line itself.
var headerFields = map[string][]string{
	"100": {"DATA", "VERSION", "SECURITY", "ENCODING", "CHARSET", "COMPRESSION", "OLDFILEUID", "NEWFILEUID"},
}

var (
	v1Versions = []string{"102", "103", "151", "160"}
	v2Versions = []string{"200", "201", "202", "203", "210", "211", "220"}
)

var defaultRegistry = newRegistry()

func newRegistry() *Registry {
	r := &Registry{
		aggregates:   aggregates,
		kinds:        make(map[string]map[string]bool, len(kinds)),
		headerFields: headerFields,
		v1Versions:   make(map[string]bool, len(v1Versions)),
		v2Versions:   make(map[string]bool, len(v2Versions)),
	}
	for domain, tags := range kinds {
		set := make(map[string]bool, len(tags))
		for _, tag := range tags {
			set[tag] = true
		}
		r.kinds[domain] = set
	}
	for _, v := range v1Versions {
		r.v1Versions[v] = true
	}
	for _, v := range v2Versions {
		r.v2Versions[v] = true
	}
	return r
}

// Default returns the shared registry covering the OFX statement aggregates.
func Default() *Registry {
	return defaultRegistry
}

// ValidateAggregate coerces the leaves of the named aggregate into typed
// values per the tag's field schema.
func (r *Registry) ValidateAggregate(tag string, leaves map[string]string) (map[string]any, error) {
	agg, known := r.aggregates[tag]
	if !known {
		return nil, fmt.Errorf("no validator for aggregate %s", tag)
	}
	return agg.validate(tag, leaves)
}

// TransactionKind coerces a list-item tag into its kind within the domain.
func (r *Registry) TransactionKind(domain, tag string) (string, error) {
	set, known := r.kinds[domain]
	if !known {
		return "", fmt.Errorf("unknown transaction-kind domain %q", domain)
	}
	if !set[tag] {
		return "", fmt.Errorf("tag %s is not a %s item", tag, domain)
	}
	return tag, nil
}

// HeaderFields returns the ordered v1 header field list for an OFXHEADER
// version.
func (r *Registry) HeaderFields(headerVersion string) ([]string, error) {
	fields, known := r.headerFields[headerVersion]
	if !known {
		return nil, fmt.Errorf("unknown OFXHEADER version %q", headerVersion)
	}
	return fields, nil
}

// SupportedVersion reports whether a VERSION value is accepted for the
// dialect ("sgml" for v1, "xml" for v2).
func (r *Registry) SupportedVersion(dialect, version string) bool {
	switch dialect {
	case "sgml":
		return r.v1Versions[version]
	case "xml":
		return r.v2Versions[version]
	default:
		return false
	}
}
