package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hi2p-perim/lightmetrica-tools/internal/buildinfo"
)

func TestVersionDefaultOutputStable(t *testing.T) {
	oldVersion, oldCommit, oldDate := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	oldShort, oldJSON := flagShort, flagJSON
	defer func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = oldVersion, oldCommit, oldDate
		flagShort, flagJSON = oldShort, oldJSON
	}()

	buildinfo.Version = ""
	buildinfo.Commit = ""
	buildinfo.Date = ""
	flagShort = false
	flagJSON = false

	out := new(bytes.Buffer)
	Cmd.SetOut(out)
	defer Cmd.SetOut(nil)

	if err := Cmd.RunE(Cmd, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.String() != "lmscene dev\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestVersionJSON(t *testing.T) {
	oldVersion := buildinfo.Version
	oldShort, oldJSON := flagShort, flagJSON
	defer func() {
		buildinfo.Version = oldVersion
		flagShort, flagJSON = oldShort, oldJSON
	}()

	buildinfo.Version = "9.9.9"
	flagShort = false
	flagJSON = true

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	Cmd.SetOut(out)
	Cmd.SetErr(errOut)
	defer func() {
		Cmd.SetOut(nil)
		Cmd.SetErr(nil)
	}()

	if err := Cmd.RunE(Cmd, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out.String())
	}
	if payload["version"] != "9.9.9" {
		t.Fatalf("unexpected version: %v", payload["version"])
	}
	if errOut.Len() == 0 {
		t.Fatalf("expected human-readable line on stderr")
	}
}
