package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aclindsa/xml"
)

// leafCutset is the whitespace stripped from character data by both
// builders. Regular spaces are deliberately excluded: account names and
// memos carry significant spaces.
const leafCutset = "\f\n\r\t\v"

// treeBuilder assembles Elements from start/data/end events. It is shared by
// the strict and lenient back-ends; the strict one rejects unbalanced tags
// while the lenient one fixes them before they reach the builder.
type treeBuilder struct {
	root  *Element
	stack []*Element
}

func (b *treeBuilder) start(tag string, attr map[string]string) error {
	el := &Element{Tag: tag, Attr: attr}
	if len(b.stack) == 0 {
		if b.root != nil {
			return fmt.Errorf("%w: content after document element", ErrSyntax)
		}
		b.root = el
	} else {
		parent := b.stack[len(b.stack)-1]
		parent.Children = append(parent.Children, el)
	}
	b.stack = append(b.stack, el)
	return nil
}

func (b *treeBuilder) data(text string) error {
	if len(b.stack) == 0 {
		return fmt.Errorf("%w: character data outside document element", ErrSyntax)
	}
	b.stack[len(b.stack)-1].Text += text
	return nil
}

// end closes the innermost open element. Tag matching is the caller's
// responsibility: the strict back-end delegates it to the XML decoder, the
// lenient one has already normalized the event stream.
func (b *treeBuilder) end() error {
	if len(b.stack) == 0 {
		return fmt.Errorf("%w: end tag without open element", ErrSyntax)
	}
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func (b *treeBuilder) close() (*Element, error) {
	if len(b.stack) != 0 {
		return nil, fmt.Errorf("%w: %d unclosed elements", ErrSyntax, len(b.stack))
	}
	if b.root == nil {
		return nil, fmt.Errorf("%w: no document element", ErrSyntax)
	}
	return b.root, nil
}

func attrMap(attrs []xml.Attr) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[strings.ToUpper(a.Name.Local)] = a.Value
	}
	return m
}

// buildStrict parses the body as well-formed XML. Most v1 files in the wild,
// and all v2 files, get through here. Any decoder complaint is surfaced as
// ErrSyntax so the facade can fall back to the lenient back-end.
func buildStrict(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var b treeBuilder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := b.start(strings.ToUpper(t.Name.Local), attrMap(t.Attr)); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if err := b.end(); err != nil {
				return nil, err
			}
		case xml.CharData:
			if text := strings.Trim(string(t), leafCutset); text != "" {
				if err := b.data(text); err != nil {
					return nil, err
				}
			}
		}
	}
	return b.close()
}

// buildLenient parses the body as OFX v1 SGML, where a leaf element is
// written as <TAG>value with no closing tag and is ended by the next start-
// or end-tag. It runs the raw token stream through a small state machine
// that synthesizes the missing end tags.
func buildLenient(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false

	var b treeBuilder
	insideData := false
	latest := ""

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if insideData {
				slog.Debug("ofx: start tag closing dangling leaf", "leaf", latest)
				if err := b.end(); err != nil {
					return nil, err
				}
			}
			insideData = false
			tag := strings.ToUpper(t.Name.Local)
			slog.Debug("ofx: opening element", "tag", tag)
			if err := b.start(tag, attrMap(t.Attr)); err != nil {
				return nil, err
			}
			latest = tag
		case xml.EndElement:
			if insideData {
				slog.Debug("ofx: end tag closing dangling leaf", "leaf", latest)
				if err := b.end(); err != nil {
					return nil, err
				}
			}
			insideData = false
			// An explicit close after a leaf that was just synthetically
			// closed is a no-op on the leaf and a real close on the
			// enclosing aggregate.
			if tag := strings.ToUpper(t.Name.Local); tag != latest {
				slog.Debug("ofx: closing element", "tag", tag)
				if err := b.end(); err != nil {
					return nil, err
				}
			}
		case xml.CharData:
			if text := strings.Trim(string(t), leafCutset); text != "" {
				insideData = true
				if err := b.data(text); err != nil {
					return nil, err
				}
			}
		}
	}
	if insideData {
		if err := b.end(); err != nil {
			return nil, err
		}
	}
	return b.close()
}
