package schema

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// fieldType says how a leaf's raw text is coerced.
type fieldType int

const (
	typeString fieldType = iota
	typeAmount
	typeDate
	typeBool
	typeInt
	typeEnum
)

// field is the per-leaf schema: its value type, whether the aggregate
// requires it, and (for enums) the closed set of accepted values.
type field struct {
	typ      fieldType
	required bool
	values   []string
}

var (
	str     = field{typ: typeString}
	reqStr  = field{typ: typeString, required: true}
	amt     = field{typ: typeAmount}
	reqAmt  = field{typ: typeAmount, required: true}
	date    = field{typ: typeDate}
	reqDate = field{typ: typeDate, required: true}
	yesNo   = field{typ: typeBool}
	num     = field{typ: typeInt}
	reqNum  = field{typ: typeInt, required: true}
)

func enum(values ...string) field {
	return field{typ: typeEnum, values: values}
}

func reqEnum(values ...string) field {
	return field{typ: typeEnum, required: true, values: values}
}

func (f field) convert(raw string) (any, error) {
	switch f.typ {
	case typeString:
		return raw, nil
	case typeAmount:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q", raw)
		}
		return d, nil
	case typeDate:
		return ParseDate(raw)
	case typeBool:
		switch raw {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q (want Y or N)", raw)
	case typeInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		return n, nil
	case typeEnum:
		for _, v := range f.values {
			if raw == v {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("value %q not in %v", raw, f.values)
	}
	return nil, fmt.Errorf("unhandled field type %d", f.typ)
}

// aggregate maps lowercased leaf names to their field schemas.
type aggregate map[string]field

// validate coerces leaves to typed values, rejecting unknown and missing
// names.
func (a aggregate) validate(tag string, leaves map[string]string) (map[string]any, error) {
	out := make(map[string]any, len(leaves))
	for name, raw := range leaves {
		f, known := a[name]
		if !known {
			return nil, fmt.Errorf("unknown element %q in %s", name, tag)
		}
		v, err := f.convert(raw)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", tag, name, err)
		}
		out[name] = v
	}
	for name, f := range a {
		if f.required {
			if _, present := leaves[name]; !present {
				return nil, fmt.Errorf("missing required element %q in %s", name, tag)
			}
		}
	}
	return out, nil
}
