package params

import "fmt"

// Each enumerates the Cartesian product of the candidate lists in declaration
// order, with the last-declared parameter varying fastest, calling fn once
// per combination. An empty lists slice yields exactly one empty combination;
// a list with no values yields none. An error from fn stops the enumeration.
func Each(lists []List, fn func([]Pair) error) error {
	for _, l := range lists {
		if len(l.Values) == 0 {
			return nil
		}
	}
	idx := make([]int, len(lists))
	for {
		combo := make([]Pair, len(lists))
		for i, l := range lists {
			combo[i] = Pair{Name: l.Name, Value: l.Values[idx[i]]}
		}
		if err := fn(combo); err != nil {
			return err
		}
		// Advance the odometer, rightmost position first.
		i := len(lists) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(lists[i].Values) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return nil
		}
	}
}

// Combinations materializes the full product of Each.
func Combinations(lists []List) [][]Pair {
	out := [][]Pair{}
	_ = Each(lists, func(combo []Pair) error {
		out = append(out, combo)
		return nil
	})
	return out
}

// Count returns the number of combinations Each will visit.
func Count(lists []List) int {
	n := 1
	for _, l := range lists {
		n *= len(l.Values)
	}
	return n
}

// CheckNames rejects duplicate parameter names; context keys are unique.
func CheckNames(lists []List) error {
	seen := make(map[string]struct{}, len(lists))
	for _, l := range lists {
		if _, ok := seen[l.Name]; ok {
			return fmt.Errorf("duplicate parameter name %q", l.Name)
		}
		seen[l.Name] = struct{}{}
	}
	return nil
}

// Context builds the template context for one combination: the fixed base
// values first, then the combination's pairs on top.
func Context(pairs []Pair, base map[string]any) map[string]any {
	ctx := make(map[string]any, len(base)+len(pairs))
	for k, v := range base {
		ctx[k] = v
	}
	for _, p := range pairs {
		ctx[p.Name] = p.Value
	}
	return ctx
}
