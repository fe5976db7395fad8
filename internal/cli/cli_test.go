package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/skelly-dev/ctxgrab/internal/resolve"
	"github.com/spf13/cobra"
)

func TestGrabPrintsMarkdownToStdout(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "main.go"), "package main\n\nfunc main() {}\n")
	mustWriteFile(t, filepath.Join(root, "lib", "util.py"), "def helper():\n    return 1\n")

	withWorkingDir(t, root, func() {
		stdout, stderr, err := executeRoot(t, "main.go", "lib", "--stdout")
		if err != nil {
			t.Fatalf("run failed: %v\nstderr:\n%s", err, stderr)
		}

		want := "main.go\n```go\npackage main\n\nfunc main() {}\n```\n\n" +
			filepath.Join("lib", "util.py") + "\n```py\ndef helper():\n    return 1\n```\n\n"
		if stdout != want {
			t.Fatalf("unexpected markdown:\n%s", stdout)
		}
		if !strings.Contains(stderr, "Context written to stdout (2 files, 5 lines)") {
			t.Fatalf("expected stdout summary, got:\n%s", stderr)
		}
		if !strings.Contains(stderr, "1. main.go (3 lines)") {
			t.Fatalf("expected per-file line counts, got:\n%s", stderr)
		}
	})
}

func TestGrabDeduplicatesOverlappingInputs(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "src", "a.go"), "package src\n")
	mustWriteFile(t, filepath.Join(root, "src", "b.go"), "package src\n")

	withWorkingDir(t, root, func() {
		stdout, _, err := executeRoot(t, "src/b.go", "src", "src/*.go", "--stdout")
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		b := filepath.Join("src", "b.go")
		a := filepath.Join("src", "a.go")
		if strings.Count(stdout, "```go") != 2 {
			t.Fatalf("expected exactly two files, got:\n%s", stdout)
		}
		if strings.Index(stdout, b+"\n") > strings.Index(stdout, a+"\n") {
			t.Fatalf("expected input order to be preserved, got:\n%s", stdout)
		}
	})
}

func TestGrabSkeletonDepth(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "main.go"), "package main\n\nfunc main() {}\n")

	withWorkingDir(t, root, func() {
		stdout, stderr, err := executeRoot(t, "main.go", "-d", "1", "--stdout")
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if want := "main.go\n```\npackage main func main\n```\n\n"; stdout != want {
			t.Fatalf("expected %q, got %q", want, stdout)
		}
		if !strings.Contains(stderr, "4 tokens") {
			t.Fatalf("expected token count in summary, got:\n%s", stderr)
		}
	})
}

func TestGrabTagsFallsBackForUnsupportedFiles(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "svc.rb"), "class Svc\n  def run\n  end\nend\n")
	mustWriteFile(t, filepath.Join(root, "NOTES.txt"), "remember\n")

	withWorkingDir(t, root, func() {
		stdout, stderr, err := executeRoot(t, "svc.rb", "NOTES.txt", "--tags", "--stdout")
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !strings.Contains(stdout, "svc.rb\n```\nclass Svc\n  def run\n```") {
			t.Fatalf("expected tag lines for svc.rb, got:\n%s", stdout)
		}
		if !strings.Contains(stdout, "NOTES.txt\n```txt\nremember\n```") {
			t.Fatalf("expected full content for NOTES.txt, got:\n%s", stdout)
		}
		if !strings.Contains(stderr, "[warning] NOTES.txt: using full content") {
			t.Fatalf("expected fallback warning, got:\n%s", stderr)
		}
	})
}

func TestGrabReportsUnresolvedInputs(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "src", "main.rs"), "fn main() {}\n")

	withWorkingDir(t, root, func() {
		stdout, stderr, err := executeRoot(t, "src/main.rs", "nonexistent123", "src/missing.rs", "src/[abc")
		if !errors.Is(err, resolve.ErrUnresolvedInputs) {
			t.Fatalf("expected ErrUnresolvedInputs, got %v", err)
		}
		if !IsReported(err) {
			t.Fatalf("expected error to be marked as reported")
		}
		if stdout != "" {
			t.Fatalf("expected no payload on failure, got:\n%s", stdout)
		}
		for _, expected := range []string{
			"Could not proceed due to unresolved inputs:",
			"The following glob patterns are invalid:",
			"Input: 'src/[abc'",
			"The following specified paths do not exist:",
			"Input: 'src/missing.rs'",
			"The following inputs could not be found:",
			"Input: 'nonexistent123'",
			"However, these files were successfully resolved:",
			`"` + filepath.Join("src", "main.rs") + `"`,
		} {
			if !strings.Contains(stderr, expected) {
				t.Fatalf("expected report to contain %q, got:\n%s", expected, stderr)
			}
		}
	})
}

func TestGrabNotFoundExplainsSkippedDirectories(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "node_modules", "lib", "uniquename.js"), "module.exports = 1\n")

	withWorkingDir(t, root, func() {
		_, stderr, err := executeRoot(t, "uniquename", "--stdout")
		if !errors.Is(err, resolve.ErrUnresolvedInputs) {
			t.Fatalf("expected ErrUnresolvedInputs, got %v", err)
		}
		if !strings.Contains(stderr, "Input: 'uniquename'") {
			t.Fatalf("expected not-found entry, got:\n%s", stderr)
		}
		if !strings.Contains(stderr, "Name search skips") || !strings.Contains(stderr, "node_modules/") {
			t.Fatalf("expected note about skipped directories, got:\n%s", stderr)
		}

		stdout, _, err := executeRoot(t, filepath.Join("node_modules", "lib", "uniquename.js"), "--stdout")
		if err != nil {
			t.Fatalf("expected explicit path to resolve: %v", err)
		}
		if !strings.Contains(stdout, "module.exports = 1") {
			t.Fatalf("expected file content, got:\n%s", stdout)
		}
	})
}

func TestGrabResolvesNamesWithSurroundingSpaces(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, " spaced.txt"), "leading space\n")

	withWorkingDir(t, root, func() {
		stdout, stderr, err := executeRoot(t, " spaced.txt", "--stdout")
		if err != nil {
			t.Fatalf("run failed: %v\nstderr:\n%s", err, stderr)
		}
		if !strings.HasPrefix(stdout, " spaced.txt\n```txt\nleading space\n```") {
			t.Fatalf("expected the literal file, got:\n%q", stdout)
		}
	})
}

func TestGrabRejectsTagsWithDepth(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "main.go"), "package main\n\nfunc main() {}\n")

	withWorkingDir(t, root, func() {
		if _, _, err := executeRoot(t, "main.go", "--tags", "--depth", "2", "--stdout"); !errors.Is(err, errTagsWithDepth) {
			t.Fatalf("expected errTagsWithDepth, got %v", err)
		}

		mustWriteFile(t, filepath.Join(root, ".ctxgrab.yaml"), "tags: true\n")
		stdout, _, err := executeRoot(t, "main.go", "--depth", "1", "--stdout")
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !strings.Contains(stdout, "package main func main\n") {
			t.Fatalf("expected depth flag to override configured tags, got:\n%s", stdout)
		}

		stdout, _, err = executeRoot(t, "main.go", "--stdout")
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !strings.Contains(stdout, "func main() {}") || strings.Contains(stdout, "```go") {
			t.Fatalf("expected configured tags to apply, got:\n%s", stdout)
		}
	})
}

func TestGrabStdoutFalseOverridesConfiguredStdout(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), "alpha\n")
	mustWriteFile(t, filepath.Join(root, ".ctxgrab.yaml"), "output: stdout\n")

	withWorkingDir(t, root, func() {
		var copied string
		withClipboard(t, func(text string) error {
			copied = text
			return nil
		})

		stdout, _, err := executeRoot(t, "a.txt", "--stdout=false")
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if stdout != "" || !strings.Contains(copied, "alpha") {
			t.Fatalf("expected clipboard delivery, stdout=%q clipboard=%q", stdout, copied)
		}
	})
}

func TestGrabCapsAmbiguousCandidates(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		mustWriteFile(t, filepath.Join(root, name, "readme.md"), name+"\n")
	}
	mustWriteFile(t, filepath.Join(root, ".ctxgrab.yaml"), "max_ambiguous_shown: 2\n")

	withWorkingDir(t, root, func() {
		_, stderr, err := executeRoot(t, "readme")
		if !errors.Is(err, resolve.ErrUnresolvedInputs) {
			t.Fatalf("expected ErrUnresolvedInputs, got %v", err)
		}
		if !strings.Contains(stderr, "Input 'readme' matched:") {
			t.Fatalf("expected ambiguous section, got:\n%s", stderr)
		}
		if !strings.Contains(stderr, `"`+filepath.Join("a", "readme.md")+`"`) || !strings.Contains(stderr, `"`+filepath.Join("b", "readme.md")+`"`) {
			t.Fatalf("expected first candidates to be listed, got:\n%s", stderr)
		}
		if strings.Contains(stderr, filepath.Join("c", "readme.md")) {
			t.Fatalf("expected candidates beyond the cap to be hidden, got:\n%s", stderr)
		}
		if !strings.Contains(stderr, "... and 3 more matches.") {
			t.Fatalf("expected remaining count, got:\n%s", stderr)
		}
	})
}

func TestGrabSuggestsSimilarFiles(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "internal", "config.go"), "package internal\n")

	withWorkingDir(t, root, func() {
		_, stderr, err := executeRoot(t, "confg.go")
		if err == nil {
			t.Fatalf("expected failure for unmatched input")
		}
		if !strings.Contains(stderr, "did you mean: internal/config.go") {
			t.Fatalf("expected suggestion, got:\n%s", stderr)
		}
	})
}

func TestGrabHonoursIgnoreFile(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "util.go"), "package root\n")
	mustWriteFile(t, filepath.Join(root, "vendor", "dep", "util.go"), "package dep\n")

	withWorkingDir(t, root, func() {
		if _, _, err := executeRoot(t, "util", "--stdout"); err == nil {
			t.Fatalf("expected ambiguity without ignore rules")
		}

		mustWriteFile(t, filepath.Join(root, ignoreFileName), "# vendored code\nvendor/\n")
		stdout, _, err := executeRoot(t, "util", "--stdout")
		if err != nil {
			t.Fatalf("expected unique match with ignore rules: %v", err)
		}
		if !strings.HasPrefix(stdout, "util.go\n") {
			t.Fatalf("expected util.go, got:\n%s", stdout)
		}
	})
}

func TestGrabEmptyDirectoryFails(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	withWorkingDir(t, root, func() {
		_, stderr, err := executeRoot(t, "empty", "--stdout")
		if !errors.Is(err, ErrNoFiles) {
			t.Fatalf("expected ErrNoFiles, got %v", err)
		}
		if !strings.Contains(stderr, "No files were found") {
			t.Fatalf("expected explanation, got:\n%s", stderr)
		}
	})
}

func TestGrabRejectsBlankInputs(t *testing.T) {
	withWorkingDir(t, t.TempDir(), func() {
		if _, _, err := executeRoot(t, " ", ""); !errors.Is(err, errNoInputs) {
			t.Fatalf("expected errNoInputs, got %v", err)
		}
		if _, _, err := executeRoot(t, "x", "--depth", "-2"); err == nil || !strings.Contains(err.Error(), "--depth") {
			t.Fatalf("expected depth validation error, got %v", err)
		}
	})
}

func TestGrabJSONOutput(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "main.go"), "package main\n")

	withWorkingDir(t, root, func() {
		stdout, _, err := executeRoot(t, "main.go", "--json")
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		var doc struct {
			Summary RunSummary `json:"summary"`
			Files   []struct {
				Path    string `json:"path"`
				Mode    string `json:"mode"`
				Content string `json:"content"`
			} `json:"files"`
		}
		if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
		}
		if doc.Summary.Files != 1 || len(doc.Files) != 1 {
			t.Fatalf("expected one file, got %#v", doc)
		}
		if doc.Files[0].Path != "main.go" || doc.Files[0].Mode != "full" || doc.Files[0].Content != "package main\n" {
			t.Fatalf("unexpected file entry: %#v", doc.Files[0])
		}

		stdout, _, err = executeRoot(t, "nothing-like-this", "--json")
		if err == nil {
			t.Fatalf("expected failure")
		}
		var failure struct {
			Error    string `json:"error"`
			NotFound []struct {
				Input string `json:"input"`
				Kind  string `json:"kind"`
			} `json:"not_found"`
		}
		if err := json.Unmarshal([]byte(stdout), &failure); err != nil {
			t.Fatalf("invalid JSON failure output: %v\n%s", err, stdout)
		}
		if len(failure.NotFound) != 1 || failure.NotFound[0].Input != "nothing-like-this" || failure.NotFound[0].Kind != "not-found" {
			t.Fatalf("unexpected failure document: %#v", failure)
		}
	})
}

func TestGrabCopiesToClipboard(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), "alpha\n")

	withWorkingDir(t, root, func() {
		var copied string
		withClipboard(t, func(text string) error {
			copied = text
			return nil
		})

		stdout, stderr, err := executeRoot(t, "a.txt")
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if copied != "a.txt\n```txt\nalpha\n```\n\n" {
			t.Fatalf("unexpected clipboard content: %q", copied)
		}
		if stdout != "" {
			t.Fatalf("expected nothing on stdout, got %q", stdout)
		}
		if !strings.Contains(stderr, "Context copied to clipboard (1 files, 1 lines)") {
			t.Fatalf("expected clipboard summary, got:\n%s", stderr)
		}
	})
}

func TestGrabFallsBackToStdoutWhenClipboardFails(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.txt"), "alpha\n")

	withWorkingDir(t, root, func() {
		withClipboard(t, func(string) error { return errors.New("no display") })

		stdout, stderr, err := executeRoot(t, "a.txt")
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !strings.Contains(stdout, "alpha") {
			t.Fatalf("expected payload on stdout, got %q", stdout)
		}
		if !strings.Contains(stderr, "Failed to copy to clipboard.") || !strings.Contains(stderr, "no display") {
			t.Fatalf("expected clipboard failure notice, got:\n%s", stderr)
		}
	})
}

func TestConfigFlagOverridesAndExplicitPath(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "main.go"), "package main\n\nfunc main() {}\n")
	mustWriteFile(t, filepath.Join(root, "conf", "grab.yaml"), "depth: 1\noutput: stdout\n")

	withWorkingDir(t, root, func() {
		stdout, _, err := executeRoot(t, "main.go", "--config", filepath.Join("conf", "grab.yaml"))
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !strings.Contains(stdout, "package main func main") {
			t.Fatalf("expected config depth to apply, got:\n%s", stdout)
		}

		stdout, _, err = executeRoot(t, "main.go", "--config", filepath.Join("conf", "grab.yaml"), "--depth", "2")
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if !strings.Contains(stdout, "package main func main ( ) { }") {
			t.Fatalf("expected flag depth to win, got:\n%s", stdout)
		}

		if _, _, err := executeRoot(t, "main.go", "--config", "missing.yaml"); err == nil {
			t.Fatalf("expected error for missing explicit config")
		}
	})
}

func TestListLanguages(t *testing.T) {
	stdout, _, err := executeRoot(t, "--list-languages")
	if err != nil {
		t.Fatalf("list-languages failed: %v", err)
	}
	for _, expected := range []string{"go", "rust", ".rs", "tsx", ".tsx"} {
		if !strings.Contains(stdout, expected) {
			t.Fatalf("expected %q in language list, got:\n%s", expected, stdout)
		}
	}
}

func TestLoadIgnoreRules(t *testing.T) {
	root := t.TempDir()
	rules, err := LoadIgnoreRules(root)
	if err != nil || rules != nil {
		t.Fatalf("expected no rules without file, got %v (%v)", rules, err)
	}

	mustWriteFile(t, filepath.Join(root, ignoreFileName), "# comment\n\nbuild/\n  *.log  \n")
	rules, err = LoadIgnoreRules(root)
	if err != nil {
		t.Fatalf("LoadIgnoreRules failed: %v", err)
	}
	if want := []string{"build/", "*.log"}; !reflect.DeepEqual(rules, want) {
		t.Fatalf("expected %v, got %v", want, rules)
	}
}

func TestOptionalFlagsReportOnlyChangedValues(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Int("depth", 0, "")
	cmd.Flags().Bool("tags", false, "")

	depth, err := OptionalIntFlag(cmd, "depth")
	if err != nil || depth != nil {
		t.Fatalf("expected nil depth before set, got %v (%v)", depth, err)
	}
	mustSetFlag(t, cmd, "depth", "0")
	depth, err = OptionalIntFlag(cmd, "depth")
	if err != nil || depth == nil || *depth != 0 {
		t.Fatalf("expected explicit depth 0, got %v (%v)", depth, err)
	}

	tags, err := OptionalBoolFlag(cmd, "missing")
	if err != nil || tags != nil {
		t.Fatalf("expected nil for unknown flag, got %v (%v)", tags, err)
	}
}

func TestSummarizePaths(t *testing.T) {
	if got := SummarizePaths([]string{"a", "b"}, 3); got != "a, b" {
		t.Fatalf("unexpected summary: %q", got)
	}
	if got := SummarizePaths([]string{"a", "b", "c"}, 2); got != "a, b ... (+1 more)" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func withClipboard(t *testing.T, fn func(string) error) {
	t.Helper()
	original := clipboardWriter
	clipboardWriter = fn
	t.Cleanup(func() {
		clipboardWriter = original
	})
}

func withWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()

	originalWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get cwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWD)
	}()

	fn()
}

func mustSetFlag(t *testing.T, cmd *cobra.Command, key, value string) {
	t.Helper()
	if err := cmd.Flags().Set(key, value); err != nil {
		t.Fatalf("failed to set --%s=%s: %v", key, value, err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
