// Package config parses the CUE sweep manifest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/hi2p-perim/lightmetrica-tools/internal/params"
)

// Manifest declares a sweep: the templated scene path, the parameter entries
// in declaration order, pass-through arguments, and optional renderer and
// filter settings. Every field is optional here; the sweep command validates
// that an infile arrived from either the manifest or the flags.
type Manifest struct {
	Infile   string
	Entries  []params.List
	Args     []string
	Renderer string
	Filter   string
}

// Load reads and validates a .cue sweep manifest.
func Load(path string) (Manifest, error) {
	if filepath.Ext(path) != ".cue" {
		return Manifest{}, errors.New("unsupported manifest format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	v := cuecontext.New().CompileBytes(data)
	if err := v.Err(); err != nil {
		return Manifest{}, fmt.Errorf("invalid manifest: %v", err)
	}
	if v.Kind() != cue.StructKind {
		return Manifest{}, errors.New("invalid manifest: top-level must be a struct")
	}
	if err := checkFields(v, "infile", "entries", "args", "renderer", "filter"); err != nil {
		return Manifest{}, fmt.Errorf("invalid manifest: %v", err)
	}

	var m Manifest
	if err := optionalString(v, "infile", &m.Infile); err != nil {
		return Manifest{}, fmt.Errorf("invalid manifest: %v", err)
	}
	if err := optionalString(v, "renderer", &m.Renderer); err != nil {
		return Manifest{}, fmt.Errorf("invalid manifest: %v", err)
	}
	if err := optionalString(v, "filter", &m.Filter); err != nil {
		return Manifest{}, fmt.Errorf("invalid manifest: %v", err)
	}

	if f := v.LookupPath(cue.ParsePath("entries")); f.Exists() {
		lists, err := decodeEntries(f)
		if err != nil {
			return Manifest{}, fmt.Errorf("invalid manifest: %v", err)
		}
		m.Entries = lists
	}
	if f := v.LookupPath(cue.ParsePath("args")); f.Exists() {
		if f.Kind() != cue.ListKind {
			return Manifest{}, errors.New("invalid manifest: args must be a list of strings")
		}
		if err := f.Decode(&m.Args); err != nil {
			return Manifest{}, fmt.Errorf("invalid manifest: args: %v", err)
		}
	}
	return m, nil
}

// decodeEntries parses the entries list. Entries are {name, values} structs
// rather than a struct of lists so declaration order stays explicit.
func decodeEntries(v cue.Value) ([]params.List, error) {
	if v.Kind() != cue.ListKind {
		return nil, errors.New("entries must be a list")
	}
	iter, err := v.List()
	if err != nil {
		return nil, err
	}
	lists := []params.List{}
	for iter.Next() {
		elem := iter.Value()
		if elem.Kind() != cue.StructKind {
			return nil, errors.New("entries elements must be {name, values} structs")
		}
		if err := checkFields(elem, "name", "values"); err != nil {
			return nil, err
		}
		nameV := elem.LookupPath(cue.ParsePath("name"))
		if !nameV.Exists() || nameV.Kind() != cue.StringKind {
			return nil, errors.New("entry name must be a string")
		}
		var name string
		if err := nameV.Decode(&name); err != nil {
			return nil, fmt.Errorf("invalid entry name: %v", err)
		}
		valuesV := elem.LookupPath(cue.ParsePath("values"))
		if !valuesV.Exists() {
			return nil, fmt.Errorf("entry %q: missing values", name)
		}
		values, err := params.DecodeList(valuesV)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %v", name, err)
		}
		lists = append(lists, params.List{Name: name, Values: values})
	}
	return lists, nil
}

func optionalString(v cue.Value, name string, dst *string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return nil
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	return f.Decode(dst)
}

func checkFields(v cue.Value, allowed ...string) error {
	iter, err := v.Fields()
	if err != nil {
		return err
	}
	for iter.Next() {
		name := strings.TrimSuffix(iter.Selector().String(), "?")
		known := false
		for _, a := range allowed {
			if name == a {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown field: %s", name)
		}
	}
	return nil
}
