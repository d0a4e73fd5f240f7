// Package renderer launches the external lightmetrica process for one
// resolved scene.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DefaultProgram is the renderer executable the tool dispatches to unless
// overridden.
const DefaultProgram = "./lightmetrica"

// Invocation describes one render dispatch. The command shape is fixed:
//
//	<program> render -i -b <basedir> <args...>
//
// with the resolved scene document written to stdin.
type Invocation struct {
	// Program is the renderer executable; DefaultProgram when empty.
	Program string
	// BaseDir is passed via -b: the resolved template's directory.
	BaseDir string
	// Args are the resolved pass-through arguments.
	Args []string
	// Scene is the resolved document piped to stdin as UTF-8.
	Scene string
}

func (inv Invocation) program() string {
	if inv.Program == "" {
		return DefaultProgram
	}
	return inv.Program
}

// commandArgs returns the argument vector following the program name.
func (inv Invocation) commandArgs() []string {
	return append([]string{"render", "-i", "-b", inv.BaseDir}, inv.Args...)
}

// Result reports how the renderer exited.
type Result struct {
	ExitCode int
}

// Run launches the invocation, writes the scene to its stdin, closes it and
// blocks until the process exits. The renderer's stdout and stderr go to the
// provided writers uncaptured. A non-zero exit is reported in Result with a
// nil error; failing to start the process at all is an error.
func Run(ctx context.Context, inv Invocation, stdout, stderr io.Writer) (Result, error) {
	cmd := exec.CommandContext(ctx, inv.program(), inv.commandArgs()...)
	cmd.Stdin = strings.NewReader(inv.Scene)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{ExitCode: exitErr.ExitCode()}, nil
		}
		return Result{}, fmt.Errorf("renderer %s: %w", inv.program(), err)
	}
	return Result{ExitCode: 0}, nil
}
