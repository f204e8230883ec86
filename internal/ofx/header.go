package ofx

import (
	"fmt"
	"strings"
)

// Header holds the parsed OFX declaration fields, keyed exactly as they
// appear on the wire (OFXHEADER, DATA, VERSION, SECURITY, ...).
type Header map[string]string

// lineReader yields lines from an in-memory source while tracking the byte
// offset of the first unread byte. Both \n and \r\n terminators are accepted.
type lineReader struct {
	data []byte
	pos  int
}

// next returns the next line with its terminator and surrounding whitespace
// removed. ok is false at end of input.
func (r *lineReader) next() (line string, ok bool) {
	if r.pos >= len(r.data) {
		return "", false
	}
	start := r.pos
	end := start
	for end < len(r.data) && r.data[end] != '\n' {
		end++
	}
	if end < len(r.data) {
		r.pos = end + 1
	} else {
		r.pos = end
	}
	return strings.TrimSpace(string(r.data[start:end])), true
}

func (r *lineReader) nextNonEmpty() (string, bool) {
	for {
		line, ok := r.next()
		if !ok {
			return "", false
		}
		if line != "" {
			return line, true
		}
	}
}

// splitHeaderField parses a v1 KEY:VALUE header line and checks the key
// against the field the version-prescribed list expects at this position.
func splitHeaderField(line, want string) (key, value string, err error) {
	k, v, found := strings.Cut(line, ":")
	if !found {
		return "", "", &HeaderError{Line: line, Msg: "missing field separator"}
	}
	key = strings.TrimSpace(k)
	if key != want {
		return "", "", &HeaderError{Line: line, Msg: fmt.Sprintf("expecting header field %q", want)}
	}
	return key, strings.TrimSpace(v), nil
}

// readHeader detects the OFX dialect, parses the header fields, and returns
// the byte offset at which the body begins.
func readHeader(data []byte, schema Schema) (Header, int, error) {
	lr := &lineReader{data: data}
	line1, ok := lr.nextNonEmpty()
	if !ok {
		return nil, 0, ErrEmptySource
	}

	switch {
	case strings.HasPrefix(line1, "OFXHEADER"):
		return readV1Header(lr, line1, schema)
	case strings.HasPrefix(line1, "<?xml"):
		return readV2Header(lr, schema)
	default:
		return nil, 0, &HeaderError{Line: line1, Msg: "unrecognized first line"}
	}
}

// readV1Header parses the line-oriented v1 header: OFXHEADER:<version>
// followed by the ordered KEY:VALUE field list that version prescribes. The
// body begins with the first line after the field list.
func readV1Header(lr *lineReader, line1 string, schema Schema) (Header, int, error) {
	key, headerVersion, err := splitHeaderField(line1, "OFXHEADER")
	if err != nil {
		return nil, 0, err
	}
	fields, err := schema.HeaderFields(headerVersion)
	if err != nil {
		return nil, 0, &VersionError{Field: "OFXHEADER", Value: headerVersion}
	}

	header := Header{key: headerVersion}
	for _, want := range fields {
		line, ok := lr.next()
		if !ok {
			return nil, 0, &HeaderError{Line: "", Msg: fmt.Sprintf("EOF before header field %q", want)}
		}
		k, v, err := splitHeaderField(line, want)
		if err != nil {
			return nil, 0, err
		}
		header[k] = v
	}

	if data := header["DATA"]; data != "OFXSGML" {
		return nil, 0, &VersionError{Field: "DATA", Value: data}
	}
	if v := header["VERSION"]; !schema.SupportedVersion(DialectSGML, v) {
		return nil, 0, &VersionError{Field: "VERSION", Value: v}
	}
	return header, lr.pos, nil
}

// readV2Header parses the XML-style header: the <?xml ...?> declaration has
// already been consumed; the next non-empty line must be the <?OFX ...?>
// processing instruction carrying whitespace-separated KEY=VALUE pairs.
func readV2Header(lr *lineReader, schema Schema) (Header, int, error) {
	decl, ok := lr.nextNonEmpty()
	if !ok {
		return nil, 0, &HeaderError{Line: "", Msg: "EOF before OFX declaration"}
	}
	if !strings.HasSuffix(decl, "?>") {
		return nil, 0, &HeaderError{Line: decl, Msg: "OFX declaration not terminated"}
	}

	header := Header{}
	inner := strings.TrimSuffix(strings.TrimPrefix(decl, "<?OFX"), "?>")
	for _, arg := range strings.Fields(inner) {
		k, v, found := strings.Cut(arg, "=")
		if !found {
			return nil, 0, &HeaderError{Line: decl, Msg: fmt.Sprintf("malformed declaration attribute %q", arg)}
		}
		header[k] = strings.Trim(v, `"'`)
	}

	if v := header["VERSION"]; !schema.SupportedVersion(DialectXML, v) {
		return nil, 0, &VersionError{Field: "VERSION", Value: v}
	}
	return header, lr.pos, nil
}
