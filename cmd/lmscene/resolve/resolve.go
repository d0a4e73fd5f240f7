// Package resolve implements `lmscene resolve`, which renders a single
// templated scene file against a flat key=value context and prints the
// result to stdout.
package resolve

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hi2p-perim/lightmetrica-tools/internal/params"
	"github.com/hi2p-perim/lightmetrica-tools/internal/template"
)

var (
	flagEntries []string
	flagContext string
)

// Cmd is the resolve subcommand.
var Cmd = &cobra.Command{
	Use:   "resolve INFILE",
	Short: "Resolve a templated scene file and print it to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Entries are validated before the template file is touched, so a
		// malformed entry never reaches the filesystem.
		ctx, err := buildContext(flagContext, flagEntries)
		if err != nil {
			return err
		}
		r, name, err := template.NewForFile(args[0])
		if err != nil {
			return err
		}
		out, err := r.RenderFile(name, ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// buildContext merges -t entries over the optional YAML context file. Entry
// values stay as the literal strings given on the command line. Entries are
// checked before the context file is read, so bad syntax fails without any
// file I/O.
func buildContext(contextPath string, entries []string) (map[string]any, error) {
	pairs := make([]params.Pair, 0, len(entries))
	for _, e := range entries {
		k, v, err := params.SplitPair(e)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, params.Pair{Name: k, Value: v})
	}

	ctx := map[string]any{}
	if contextPath != "" {
		base, err := params.LoadContext(contextPath)
		if err != nil {
			return nil, err
		}
		ctx = base
	}
	for _, p := range pairs {
		ctx[p.Name] = p.Value
	}
	return ctx, nil
}

func init() {
	Cmd.Flags().StringArrayVarP(&flagEntries, "entry", "t", nil, "Add a template context entry (key=value, repeatable)")
	Cmd.Flags().StringVar(&flagContext, "context", "", "Path to a YAML file with fixed context values")
}
