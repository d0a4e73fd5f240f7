package params

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ParseList parses a sweep entry of the form key=[v1, v2, ...]. The value is
// compiled as a CUE expression and must evaluate to a concrete list. CUE
// bytes literals ('a') are decoded as strings, so the single-quoted list
// literals accepted by the original tool keep working.
func ParseList(s string) (List, error) {
	name, expr, err := SplitPair(s)
	if err != nil {
		return List{}, err
	}
	values, err := EvalListExpr(expr)
	if err != nil {
		return List{}, fmt.Errorf("invalid entry %q: %v", s, err)
	}
	return List{Name: name, Values: values}, nil
}

// EvalListExpr evaluates a CUE list literal into Go values.
func EvalListExpr(expr string) ([]any, error) {
	v := cuecontext.New().CompileString(expr)
	if err := v.Err(); err != nil {
		return nil, err
	}
	return DecodeList(v)
}

// DecodeList decodes a concrete CUE list value element by element.
func DecodeList(v cue.Value) ([]any, error) {
	if v.Kind() != cue.ListKind {
		return nil, fmt.Errorf("expected a list, found %s", v.Kind())
	}
	iter, err := v.List()
	if err != nil {
		return nil, err
	}
	values := []any{}
	for iter.Next() {
		elem, err := decodeValue(iter.Value())
		if err != nil {
			return nil, err
		}
		values = append(values, elem)
	}
	return values, nil
}

func decodeValue(v cue.Value) (any, error) {
	if err := v.Err(); err != nil {
		return nil, err
	}
	switch v.Kind() {
	case cue.NullKind:
		return nil, nil
	case cue.BoolKind:
		return v.Bool()
	case cue.IntKind:
		return v.Int64()
	case cue.FloatKind:
		return v.Float64()
	case cue.StringKind:
		return v.String()
	case cue.BytesKind:
		b, err := v.Bytes()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case cue.ListKind:
		return DecodeList(v)
	case cue.StructKind:
		out := map[string]any{}
		if err := v.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		if !v.IsConcrete() {
			return nil, fmt.Errorf("value is not concrete")
		}
		return nil, fmt.Errorf("unsupported value kind %s", v.Kind())
	}
}
