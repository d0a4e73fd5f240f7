package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hi2p-perim/lightmetrica-tools/cmd/lmscene/root"
)

// exitCoder lets command errors pick their own process exit code.
type exitCoder interface {
	ExitCode() int
}

func main() {
	err := root.Execute(os.Args[1:])
	if err == nil {
		return
	}
	// Failures print one line on stderr, no usage text and no stack trace.
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if msg == "" {
		msg = "error"
	}
	fmt.Fprintln(os.Stderr, msg)
	code := 1
	var ec exitCoder
	if errors.As(err, &ec) && ec.ExitCode() != 0 {
		code = ec.ExitCode()
	}
	os.Exit(code)
}
