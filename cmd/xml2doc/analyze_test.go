package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunAnalyze(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{"doc.xml": sampleXML})
	te := newTestEnv()

	code := run([]string{"analyze", filepath.Join(tempDir, "doc.xml")}, te.env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	out := te.stdout.String()
	for _, want := range []string{"Chapter", "Sentence", "x1", "[@Num]", "Hierarchy:"} {
		if !strings.Contains(out, want) {
			t.Errorf("analyze output missing %q:\n%s", want, out)
		}
	}
}

func TestRunAnalyzeJSON(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{"doc.xml": sampleXML})
	te := newTestEnv()

	code := run([]string{"analyze", "--json", filepath.Join(tempDir, "doc.xml")}, te.env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	var report structureReport
	if err := json.Unmarshal(te.stdout.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if report.Counts["Sentence"] != 1 {
		t.Errorf("Counts[Sentence] = %d, want 1", report.Counts["Sentence"])
	}
	if len(report.Hierarchy["Chapter"]) == 0 {
		t.Error("expected Chapter children in hierarchy")
	}
}

func TestRunAnalyzeMissingFile(t *testing.T) {
	te := newTestEnv()

	code := run([]string{"analyze", filepath.Join(t.TempDir(), "missing.xml")}, te.env)
	if code != ExitIO {
		t.Errorf("exit code = %d, want %d", code, ExitIO)
	}
}

func TestRunAnalyzeNoArgs(t *testing.T) {
	te := newTestEnv()

	code := run([]string{"analyze"}, te.env)
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

func TestRunAnalyzeMalformedXML(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{"bad.xml": "<open><unclosed>"})
	te := newTestEnv()

	code := run([]string{"analyze", filepath.Join(tempDir, "bad.xml")}, te.env)
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(te.stderr.String(), "hint:") {
		t.Errorf("expected a hint for malformed XML, got: %s", te.stderr.String())
	}
}

func TestRunFormats(t *testing.T) {
	te := newTestEnv()

	code := run([]string{"formats"}, te.env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, te.stderr.String())
	}

	out := te.stdout.String()
	for _, want := range []string{"html", "pdf", "markdown", "docx", ".md"} {
		if !strings.Contains(out, want) {
			t.Errorf("formats output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDoctorJSON(t *testing.T) {
	te := newTestEnv()

	// Doctor never fails the run outright for missing Chrome in tests;
	// only verify the JSON shape.
	run([]string{"doctor", "--json"}, te.env)

	var result doctorResult
	if err := json.Unmarshal(te.stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if result.Env.OS == "" {
		t.Error("expected OS in doctor output")
	}
}

func TestIsContainerOverride(t *testing.T) {
	t.Setenv("XML2DOC_CONTAINER", "1")

	inContainer, hint := isContainer()
	if !inContainer || hint != "XML2DOC_CONTAINER=1" {
		t.Errorf("isContainer() = %v, %q", inContainer, hint)
	}
}
