package ofx

import (
	"fmt"
	"strings"
)

// aggregateHandler produces the flattened representation of a specialized
// sub-aggregate. Handlers are registered per statement kind; the only one in
// the core resolves SECID into a Security reference for investment
// statements.
type aggregateHandler func(*Element) (map[string]any, error)

// flattener converts element subtrees into flat attribute maps, validating
// leaf values through the schema as it goes.
type flattener struct {
	schema   Schema
	handlers map[string]aggregateHandler
}

func newFlattener(schema Schema) *flattener {
	return &flattener{schema: schema, handlers: map[string]aggregateHandler{}}
}

// flatten converts el into a single un-nested map. Leaves become
// lowercased-tag → typed-value entries validated against el's schema;
// sub-aggregates are recursively flattened (or dispatched to a registered
// handler) and merged in. Any name collision is fatal.
//
// recurse=false skips sub-aggregates entirely; it exists to peek at DTSTART
// and DTEND in transaction-list preambles without descending into each
// transaction.
func (f *flattener) flatten(el *Element, recurse bool) (map[string]any, error) {
	leaves := map[string]string{}
	aggregates := map[string]any{}

	for _, child := range el.Children {
		if text := strings.TrimSpace(child.Text); text != "" && len(child.Children) == 0 {
			key := strings.ToLower(child.Tag)
			if _, dup := leaves[key]; dup {
				return nil, &SchemaError{Tag: child.Tag, Msg: "duplicate element"}
			}
			leaves[key] = text
			continue
		}
		if !recurse {
			continue
		}
		sub, err := f.flattenAggregate(child)
		if err != nil {
			return nil, err
		}
		for k, v := range sub {
			if _, dup := aggregates[k]; dup {
				return nil, &SchemaError{Tag: child.Tag, Msg: fmt.Sprintf("aggregate key %q collides with a sibling", k)}
			}
			aggregates[k] = v
		}
	}

	typed, err := f.schema.ValidateAggregate(el.Tag, leaves)
	if err != nil {
		return nil, &SchemaError{Tag: el.Tag, Err: err}
	}
	for k := range aggregates {
		if _, dup := typed[k]; dup {
			return nil, &SchemaError{Tag: el.Tag, Msg: fmt.Sprintf("aggregate key %q collides with a leaf", k)}
		}
		typed[k] = aggregates[k]
	}
	return typed, nil
}

func (f *flattener) flattenAggregate(el *Element) (map[string]any, error) {
	if handler, ok := f.handlers[el.Tag]; ok {
		return handler(el)
	}
	return f.flatten(el, true)
}

// listItem flattens a list item, injects its kind (derived from the tag via
// the domain's kind validator) under "type", and merges in caller-supplied
// extras. Key collisions are fatal.
func (f *flattener) listItem(item *Element, domain string, extras map[string]any) (map[string]any, error) {
	attrs, err := f.flatten(item, true)
	if err != nil {
		return nil, err
	}

	kind, err := f.schema.TransactionKind(domain, item.Tag)
	if err != nil {
		return nil, &SchemaError{Tag: item.Tag, Err: err}
	}
	if _, dup := attrs["type"]; dup {
		return nil, &SchemaError{Tag: item.Tag, Msg: `attribute "type" collides with the item kind`}
	}
	attrs["type"] = kind

	for k, v := range extras {
		if _, dup := attrs[k]; dup {
			return nil, &SchemaError{Tag: item.Tag, Msg: fmt.Sprintf("extra attribute %q collides", k)}
		}
		attrs[k] = v
	}
	return attrs, nil
}

// tranList peeks at the list preamble for DTSTART/DTEND, then returns the
// transaction children. Children are selected by tag, not position, so a
// dialect inserting extra preamble fields cannot corrupt the list.
func (f *flattener) tranList(list *Element) (start, end any, items []*Element, err error) {
	preamble, err := f.flatten(list, false)
	if err != nil {
		return nil, nil, nil, err
	}
	for _, child := range list.Children {
		if child.Tag == "DTSTART" || child.Tag == "DTEND" {
			continue
		}
		items = append(items, child)
	}
	return preamble["dtstart"], preamble["dtend"], items, nil
}
