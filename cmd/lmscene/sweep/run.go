package sweep

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hi2p-perim/lightmetrica-tools/internal/params"
	"github.com/hi2p-perim/lightmetrica-tools/internal/renderer"
	"github.com/hi2p-perim/lightmetrica-tools/internal/template"
)

// separator closes each per-combination progress block.
const separator = "----------------------------------------------------------------------"

// sweepError reports render failures at the end of the run.
type sweepError struct {
	failed int
	total  int
}

func (e sweepError) Error() string {
	return fmt.Sprintf("%d of %d renders failed", e.failed, e.total)
}

func (e sweepError) ExitCode() int { return 1 }

// runSweep enumerates all combinations, resolves the scene and arguments for
// each, and dispatches the renderer. A renderer that exits non-zero does not
// stop the sweep; a renderer that cannot be started does.
func runSweep(ctx context.Context, p plan, stdout, stderr io.Writer) error {
	dispatched := 0
	failed := 0

	err := params.Each(p.lists, func(combo []params.Pair) error {
		tctx := params.Context(combo, p.base)

		keep, err := p.filter.Keep(tctx)
		if err != nil {
			return err
		}
		if !keep {
			return nil
		}

		filename, err := template.RenderString(p.infile, tctx)
		if err != nil {
			return err
		}
		r, name, err := template.NewForFile(filename)
		if err != nil {
			return err
		}
		scene, err := r.RenderFile(name, tctx)
		if err != nil {
			return err
		}
		args := make([]string, len(p.args))
		for i, a := range p.args {
			args[i], err = template.RenderString(a, tctx)
			if err != nil {
				return err
			}
		}

		fmt.Fprintln(stdout, filename)
		fmt.Fprintln(stdout, "Started")
		fmt.Fprintln(stdout, parametersLine(combo))
		if len(args) > 0 {
			fmt.Fprintln(stdout, "Arguments: "+strings.Join(args, " "))
		}

		dispatched++
		if p.dryRun {
			fmt.Fprintln(stdout, "Finished (dry run)")
		} else {
			inv := renderer.Invocation{
				Program: p.program,
				BaseDir: filepath.Dir(filename),
				Args:    args,
				Scene:   scene,
			}
			res, err := renderer.Run(ctx, inv, stdout, stderr)
			if err != nil {
				return err
			}
			if res.ExitCode != 0 {
				failed++
			}
			fmt.Fprintf(stdout, "Finished (exit %d)\n", res.ExitCode)
		}
		fmt.Fprintln(stdout, separator)
		return nil
	})
	if err != nil {
		return err
	}

	if failed > 0 {
		return sweepError{failed: failed, total: dispatched}
	}
	return nil
}

// parametersLine formats one combination in declaration order.
func parametersLine(combo []params.Pair) string {
	if len(combo) == 0 {
		return "Parameters:"
	}
	parts := make([]string, 0, len(combo))
	for _, pair := range combo {
		parts = append(parts, fmt.Sprintf("%s=%v", pair.Name, pair.Value))
	}
	return "Parameters: " + strings.Join(parts, " ")
}
