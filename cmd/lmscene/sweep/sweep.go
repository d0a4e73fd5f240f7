// Package sweep implements `lmscene sweep`, which resolves a templated scene
// file once per combination of the declared parameter lists and dispatches
// each resolved scene to the renderer.
package sweep

import (
	"github.com/spf13/cobra"
)

var (
	flagInfile   string
	flagEntries  []string
	flagContext  string
	flagConfig   string
	flagRenderer string
	flagFilter   string
	flagDryRun   bool
)

// Cmd is the sweep subcommand.
var Cmd = &cobra.Command{
	Use:   "sweep -s INFILE [-t key=[values]]... [flags] [-- RENDERER_ARGS...]",
	Short: "Resolve a scene template across all parameter combinations and render each one",
	Long: `Resolve a scene template once per combination of the declared parameter
lists and pipe each resolved scene to the renderer.

Each -t entry declares one parameter as key=[values], where the value list is
a CUE list literal, e.g. -t 'spp=[1,16,256]'. Combinations are enumerated in
declaration order with the rightmost entry varying fastest. The input path and
any renderer arguments are themselves templates, resolved per combination.

Arguments after -- are passed to the renderer unchanged (after template
resolution). A renderer that exits non-zero is reported and the sweep moves
on; the command exits non-zero at the end if any render failed.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPlan(args)
		if err != nil {
			return err
		}
		return runSweep(cmd.Context(), p, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	Cmd.Flags().StringVarP(&flagInfile, "infile", "s", "", "Templated path of the input scene file (required unless set in --config)")
	Cmd.Flags().StringArrayVarP(&flagEntries, "entry", "t", nil, "Add a sweep entry: key=[values] with a CUE list literal (repeatable)")
	Cmd.Flags().StringVar(&flagContext, "context", "", "Path to a YAML file with fixed context values")
	Cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a sweep manifest (.cue)")
	Cmd.Flags().StringVar(&flagRenderer, "renderer", "", "Renderer executable (default ./lightmetrica)")
	Cmd.Flags().StringVar(&flagFilter, "filter", "", "Lua expression over the combination context; false skips the combination")
	Cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Resolve and report every combination without running the renderer")
}
