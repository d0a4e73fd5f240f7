package sweep

import (
	"errors"
	"path/filepath"

	"github.com/hi2p-perim/lightmetrica-tools/internal/config"
	"github.com/hi2p-perim/lightmetrica-tools/internal/params"
)

// plan carries everything one sweep run needs, with flag and manifest
// values already merged.
type plan struct {
	infile  string
	lists   []params.List
	args    []string
	program string
	filter  *params.Filter
	base    map[string]any
	dryRun  bool
}

// buildPlan merges the manifest (if any) with command-line flags. Flags win
// over manifest values, except entries and pass-through arguments, which
// append after the manifest's own.
func buildPlan(passthrough []string) (plan, error) {
	var m config.Manifest
	if flagConfig != "" {
		var err error
		m, err = config.Load(flagConfig)
		if err != nil {
			return plan{}, err
		}
	}

	p := plan{dryRun: flagDryRun}

	// A relative infile from the manifest resolves against the manifest's
	// directory, so a sweep directory stays self-contained. Flag paths are
	// relative to the working directory as usual.
	p.infile = m.Infile
	if p.infile != "" && !filepath.IsAbs(p.infile) {
		p.infile = filepath.Join(filepath.Dir(flagConfig), p.infile)
	}
	if flagInfile != "" {
		p.infile = flagInfile
	}
	if p.infile == "" {
		return plan{}, errors.New("missing required flag: --infile")
	}

	lists := append([]params.List(nil), m.Entries...)
	for _, e := range flagEntries {
		l, err := params.ParseList(e)
		if err != nil {
			return plan{}, err
		}
		lists = append(lists, l)
	}
	if err := params.CheckNames(lists); err != nil {
		return plan{}, err
	}
	p.lists = lists

	p.args = append(append([]string(nil), m.Args...), passthrough...)

	p.program = m.Renderer
	if flagRenderer != "" {
		p.program = flagRenderer
	}

	src := m.Filter
	if flagFilter != "" {
		src = flagFilter
	}
	p.filter = params.NewFilter(src)

	if flagContext != "" {
		base, err := params.LoadContext(flagContext)
		if err != nil {
			return plan{}, err
		}
		p.base = base
	}

	return p, nil
}
