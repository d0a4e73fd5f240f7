package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

type runResult struct {
	code   int
	stdout []byte
	stderr []byte
}

func findModuleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("module root not found")
		}
		dir = parent
	}
}

func buildLmscene(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "lmscene")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	cmd := exec.Command("go", "build", "-o", bin, "./cmd/lmscene")
	cmd.Dir = findModuleRoot(t)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, string(out))
	}
	return bin
}

func runCmd(t *testing.T, bin string, args ...string) runResult {
	t.Helper()
	cmd := exec.Command(bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			code = ee.ExitCode()
		} else {
			code = -1
		}
	}
	return runResult{code: code, stdout: stdout.Bytes(), stderr: stderr.Bytes()}
}

func assertStable(t *testing.T, runs []runResult) {
	t.Helper()
	if len(runs) < 2 {
		t.Fatalf("need >=2 runs")
	}
	a := runs[0]
	for i, r := range runs[1:] {
		if r.code != a.code {
			t.Fatalf("exit code drift at run %d: %d vs %d", i+1, r.code, a.code)
		}
		if !bytes.Equal(r.stdout, a.stdout) {
			t.Fatalf("stdout drift at run %d", i+1)
		}
		if !bytes.Equal(r.stderr, a.stderr) {
			t.Fatalf("stderr drift at run %d", i+1)
		}
	}
}

func TestVersion_StableOutput(t *testing.T) {
	bin := buildLmscene(t)
	var runs []runResult
	for i := 0; i < 5; i++ {
		runs = append(runs, runCmd(t, bin, "version"))
	}
	assertStable(t, runs)
	if runs[0].code != 0 {
		t.Fatalf("unexpected exit code: %d", runs[0].code)
	}
	if string(runs[0].stdout) != "lmscene dev\n" {
		t.Fatalf("unexpected output: %q", string(runs[0].stdout))
	}
}

func TestResolve_Deterministic(t *testing.T) {
	bin := buildLmscene(t)
	scene := filepath.Join("testdata", "scenes", "cbox.yml")
	var runs []runResult
	for i := 0; i < 5; i++ {
		runs = append(runs, runCmd(t, bin, "resolve", scene, "-t", "algo=pt", "-t", "spp=16"))
	}
	assertStable(t, runs)
	if runs[0].code != 0 || len(runs[0].stderr) != 0 {
		t.Fatalf("unexpected status: code=%d stderr=%q", runs[0].code, runs[0].stderr)
	}
	want := "lightmetrica_scene:\n" +
		"  version: 1.0.0\n" +
		"  renderer:\n" +
		"    type: renderer::pt\n" +
		"    params:\n" +
		"      num_samples: 16\n" +
		"  scene:\n" +
		"    main_camera: n1\n" +
		"    nodes:\n" +
		"      - id: n1\n" +
		"\n"
	if string(runs[0].stdout) != want {
		t.Fatalf("unexpected output:\n%s", string(runs[0].stdout))
	}
}

func TestSweep_DryRunDeterministic(t *testing.T) {
	bin := buildLmscene(t)
	scene := filepath.Join("testdata", "scenes", "cbox.yml")
	var runs []runResult
	for i := 0; i < 5; i++ {
		runs = append(runs, runCmd(t, bin, "sweep",
			"-s", scene,
			"-t", `algo=["pt", "bdpt"]`,
			"-t", "spp=[1, 16]",
			"--dry-run"))
	}
	assertStable(t, runs)
	if runs[0].code != 0 || len(runs[0].stderr) != 0 {
		t.Fatalf("unexpected status: code=%d stderr=%q", runs[0].code, runs[0].stderr)
	}
	out := string(runs[0].stdout)
	for _, line := range []string{
		"Parameters: algo=pt spp=1\n",
		"Parameters: algo=pt spp=16\n",
		"Parameters: algo=bdpt spp=1\n",
		"Parameters: algo=bdpt spp=16\n",
	} {
		if !bytes.Contains([]byte(out), []byte(line)) {
			t.Fatalf("missing %q in output:\n%s", line, out)
		}
	}
	if got := bytes.Count([]byte(out), []byte("Finished (dry run)\n")); got != 4 {
		t.Fatalf("expected 4 combinations, got %d:\n%s", got, out)
	}
}

func TestSweep_FailedRenderSetsExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake renderer requires a POSIX shell")
	}
	bin := buildLmscene(t)
	scene := filepath.Join("testdata", "scenes", "cbox.yml")

	fake := filepath.Join(t.TempDir(), "fake-lightmetrica")
	script := "#!/bin/sh\nif grep -q 'num_samples: 1$'; then exit 7; fi\n"
	if err := os.WriteFile(fake, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake renderer: %v", err)
	}

	r := runCmd(t, bin, "sweep",
		"-s", scene,
		"-t", `algo=["pt", "bdpt"]`,
		"-t", "spp=[1, 16]",
		"--renderer", fake)
	if r.code != 1 {
		t.Fatalf("unexpected exit code: %d\nstderr: %s", r.code, r.stderr)
	}
	if string(r.stderr) != "2 of 4 renders failed\n" {
		t.Fatalf("unexpected stderr: %q", string(r.stderr))
	}
	if got := bytes.Count(r.stdout, []byte("Finished (exit 7)\n")); got != 2 {
		t.Fatalf("expected 2 failed renders, got %d:\n%s", got, r.stdout)
	}
	if got := bytes.Count(r.stdout, []byte("Finished (exit 0)\n")); got != 2 {
		t.Fatalf("expected 2 successful renders, got %d:\n%s", got, r.stdout)
	}
}

func TestMalformedEntry_SingleLineStderr(t *testing.T) {
	bin := buildLmscene(t)
	r := runCmd(t, bin, "sweep", "-s", "ignored.yml", "-t", "nonsense")
	if r.code != 1 {
		t.Fatalf("unexpected exit code: %d", r.code)
	}
	if len(r.stdout) != 0 {
		t.Fatalf("unexpected stdout: %q", string(r.stdout))
	}
	want := "invalid entry \"nonsense\": expected exactly one '='\n"
	if string(r.stderr) != want {
		t.Fatalf("unexpected stderr: %q", string(r.stderr))
	}
}

func TestUnknownManifestField_SingleLineStderr(t *testing.T) {
	bin := buildLmscene(t)
	dir := t.TempDir()
	manifest := filepath.Join(dir, "sweep.cue")
	if err := os.WriteFile(manifest, []byte("infile: \"x.yml\"\nbogus: 1\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	r := runCmd(t, bin, "sweep", "--config", manifest)
	if r.code != 1 {
		t.Fatalf("unexpected exit code: %d", r.code)
	}
	if string(r.stderr) != "invalid manifest: unknown field: bogus\n" {
		t.Fatalf("unexpected stderr: %q", string(r.stderr))
	}
}
