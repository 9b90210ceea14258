package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deckstyle/internal/config"
	"deckstyle/internal/theme"
	"deckstyle/internal/theme/builtin"
	"deckstyle/internal/themefile"
)

type cmdResult struct {
	stdout   string
	stderr   string
	err      error
	registry *theme.Registry
}

// runCmd executes the CLI against a fresh registry with the bundled themes
// and an isolated home directory.
func runCmd(t *testing.T, args ...string) cmdResult {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cleanup := config.ResetForTesting(t)
	t.Cleanup(cleanup)

	r := theme.NewRegistry()
	builtin.RegisterInto(r)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(r)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err, registry: r}
}

func writeTheme(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListCommand(t *testing.T) {
	res := runCmd(t, "list")
	if res.err != nil {
		t.Fatalf("list error = %v", res.err)
	}
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two themes, got:\n%s", res.stdout)
	}
	if !strings.HasPrefix(lines[2], "*") || !strings.Contains(lines[2], "teal-code") {
		t.Errorf("teal-code should be marked current: %q", lines[2])
	}
	if !strings.Contains(lines[1], "monokai") || !strings.Contains(lines[1], "javascript,jsx,tsx,typescript") {
		t.Errorf("teal row missing highlight info: %q", lines[1])
	}
}

func TestShowCommand(t *testing.T) {
	res := runCmd(t, "show", "teal")
	if res.err != nil {
		t.Fatalf("show error = %v", res.err)
	}
	for _, want := range []string{
		"Name:       teal",
		`Font:       "ITC Avant Garde Gothic Std Bold", "Helvetica", "Arial", sans-serif`,
		"background   #265F69",
		"h1     fontSize=48px",
		"Highlight:  monokai",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("show output missing %q:\n%s", want, res.stdout)
		}
	}

	res = runCmd(t, "show", "missing")
	if res.err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestHighlightOverride(t *testing.T) {
	res := runCmd(t, "--highlight", "dracula", "show", "teal")
	if res.err != nil {
		t.Fatalf("show error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "Highlight:  dracula") {
		t.Errorf("override not applied:\n%s", res.stdout)
	}
	if !strings.Contains(res.stdout, "background   #265F69") {
		t.Errorf("override should keep the base colors:\n%s", res.stdout)
	}

	res = runCmd(t, "--highlight", "no-such-style", "show")
	if res.err == nil {
		t.Fatal("expected error for missing highlight style")
	}
}

func TestExportCommand(t *testing.T) {
	res := runCmd(t, "export", "teal-code", "--format", "json")
	if res.err != nil {
		t.Fatalf("export error = %v", res.err)
	}
	var doc themefile.Document
	if err := json.Unmarshal([]byte(res.stdout), &doc); err != nil {
		t.Fatalf("export output is not json: %v\n%s", err, res.stdout)
	}
	if doc.Name != "teal-code" || doc.Colors["background"] != "#265F69" {
		t.Errorf("unexpected document: %+v", doc)
	}

	res = runCmd(t, "export", "--format", "css", "--scope", ".deck")
	if res.err != nil {
		t.Fatalf("css export error = %v", res.err)
	}
	if !strings.HasPrefix(res.stdout, ".deck {") || !strings.Contains(res.stdout, ".deck h1 {") {
		t.Errorf("unexpected css:\n%s", res.stdout)
	}

	out := filepath.Join(t.TempDir(), "teal.toml")
	res = runCmd(t, "export", "teal", "-f", "toml", "-o", out)
	if res.err != nil {
		t.Fatalf("file export error = %v", res.err)
	}
	got, err := themefile.Load(out)
	if err != nil {
		t.Fatalf("exported file does not load: %v", err)
	}
	if got.Name != "teal" || got.Element(theme.ElementH1).FontSize != "48px" {
		t.Errorf("round trip lost fields: %+v", got)
	}

	res = runCmd(t, "export", "--format", "xml")
	if res.err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestExportClipboard(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWrite = orig }()

	res := runCmd(t, "export", "teal", "--clipboard")
	if res.err != nil {
		t.Fatalf("export error = %v", res.err)
	}
	if !strings.HasPrefix(copied, "name: teal\n") {
		t.Errorf("clipboard content = %q", copied)
	}
	if res.stdout != "" {
		t.Errorf("nothing should go to stdout, got %q", res.stdout)
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeTheme(t, dir, "good.yaml", "name: good\ncolors: {text: white}\n")
	bad := writeTheme(t, dir, "bad.yaml", "colors: {text: '#ggg'}\nfont: Arial\n")

	res := runCmd(t, "validate", good)
	if res.err != nil {
		t.Fatalf("validate error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "ok   "+good+" (good)") {
		t.Errorf("unexpected output: %q", res.stdout)
	}

	res = runCmd(t, "validate", good, bad)
	if res.err == nil {
		t.Fatal("expected error for invalid file")
	}
	if !strings.Contains(res.err.Error(), "1 of 2 theme files invalid") {
		t.Errorf("error = %v", res.err)
	}
	if !strings.Contains(res.stderr, "FAIL "+bad) || !strings.Contains(res.stderr, "colors.text") {
		t.Errorf("stderr should describe the failure:\n%s", res.stderr)
	}
}

func TestUseCommand(t *testing.T) {
	res := runCmd(t, "use", "teal")
	if res.err != nil {
		t.Fatalf("use error = %v", res.err)
	}
	if res.registry.CurrentName() != "teal" {
		t.Errorf("current = %q", res.registry.CurrentName())
	}
	if got := config.GetString(config.KeyTheme); got != "teal" {
		t.Errorf("config theme = %q", got)
	}

	res = runCmd(t, "use", "nope")
	if res.err == nil || !strings.Contains(res.err.Error(), "available: teal, teal-code") {
		t.Fatalf("expected unknown theme error listing themes, got %v", res.err)
	}
}

func TestThemeFlag(t *testing.T) {
	res := runCmd(t, "--theme", "teal", "list")
	if res.err != nil {
		t.Fatalf("list error = %v", res.err)
	}
	if res.registry.CurrentName() != "teal" {
		t.Errorf("current = %q", res.registry.CurrentName())
	}

	res = runCmd(t, "--theme", "missing", "list")
	if res.err == nil {
		t.Fatal("expected error for unknown --theme")
	}
}

func TestUserThemesDir(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "ocean.toml", "name = \"ocean\"\n[colors]\nbackground = \"#012\"\n")

	res := runCmd(t, "--themes-dir", dir, "--theme", "ocean", "list")
	if res.err != nil {
		t.Fatalf("list error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "ocean") || res.registry.CurrentName() != "ocean" {
		t.Errorf("user theme not loaded:\n%s", res.stdout)
	}

	writeTheme(t, dir, "broken.yaml", "colors: [\n")
	res = runCmd(t, "--themes-dir", dir, "list")
	if res.err == nil {
		t.Fatal("expected error for broken user theme")
	}
}

func TestPreviewPrint(t *testing.T) {
	deck := writeTheme(t, t.TempDir(), "talk.md", "# Hello\n\nfirst slide\n---\n# Bye\n\n```go\nfunc main() {}\n```\n")

	res := runCmd(t, "preview", deck, "--print", "--plain", "--width", "40")
	if res.err != nil {
		t.Fatalf("preview error = %v", res.err)
	}
	for _, want := range []string{"Hello", "first slide", "Bye", "func main()", strings.Repeat("─", 40)} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("preview output missing %q:\n%s", want, res.stdout)
		}
	}
	if strings.Contains(res.stdout, "\x1b[") {
		t.Errorf("plain output should have no escape codes")
	}

	res = runCmd(t, "preview", filepath.Join(t.TempDir(), "missing.md"), "--print")
	if res.err == nil {
		t.Fatal("expected error for missing deck")
	}
}

func TestVersionCommand(t *testing.T) {
	res := runCmd(t, "version")
	if res.err != nil {
		t.Fatalf("version error = %v", res.err)
	}
	if !strings.Contains(res.stdout, "deckstyle version") {
		t.Errorf("unexpected output: %q", res.stdout)
	}
}
