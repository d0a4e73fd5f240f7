// Package version implements `lmscene version`.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/hi2p-perim/lightmetrica-tools/internal/buildinfo"
)

var (
	flagShort bool
	flagJSON  bool
)

// Cmd prints version metadata. The default output is exactly one stable
// line on stdout so scripts can parse it.
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the lmscene version",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagShort || !flagJSON {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "lmscene %s\n", buildinfo.Summary())
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "lmscene version: %s\n", buildinfo.Summary())
		return encodeJSON(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func encodeJSON(cmd *cobra.Command) error {
	out := map[string]any{
		"version":   buildinfo.Version,
		"commit":    buildinfo.Commit,
		"date":      buildinfo.Date,
		"built_by":  buildinfo.BuiltBy,
		"go":        runtime.Version(),
		"go_os":     runtime.GOOS,
		"go_arch":   runtime.GOARCH,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func init() {
	Cmd.Flags().BoolVar(&flagShort, "short", false, "Print only the version line")
	Cmd.Flags().BoolVar(&flagJSON, "json", false, "Print detailed version info as JSON")
}
