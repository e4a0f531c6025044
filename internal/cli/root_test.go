package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/formgrid/pkg/errors"
)

// isolate points the cache and config directories at temporary ones.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

// run executes the root command with args and returns what it wrote to
// the CLI's stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Stdout = &out

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

// starter writes a one-row layout with a text and an email input.
func starter(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signup.json")
	mustRun(t, "new", path, "--title", "Signup", "--fields", "input-text,input-email")
	return path
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"render", "validate", "new", "diagram", "design", "renderers", "catalog", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing subcommand %q (have %v)", want, names)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	isolate(t)
	out := mustRun(t, "--version")
	if !strings.Contains(out, appName+" version") {
		t.Errorf("version output = %q", out)
	}
}

func TestNewAndRender(t *testing.T) {
	isolate(t)
	in := starter(t)
	html := filepath.Join(t.TempDir(), "signup.html")

	mustRun(t, "render", in, "-o", html)
	data, err := os.ReadFile(html)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"input-text-1", "input-email-1", "<form"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("markup misses %q:\n%s", want, data)
		}
	}

	out := mustRun(t, "render", in, "-r", "bootstrap", "--no-cache")
	if !strings.Contains(out, "col-md-12") {
		t.Errorf("bootstrap markup misses col-md-12:\n%s", out)
	}
}

func TestRenderCompact(t *testing.T) {
	isolate(t)
	in := starter(t)
	out := mustRun(t, "render", in, "--compact", "--no-cache")
	if strings.Contains(strings.TrimSpace(out), "\n  ") {
		t.Errorf("compact markup is indented:\n%s", out)
	}
}

func TestRenderErrors(t *testing.T) {
	isolate(t)
	in := starter(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown renderer", []string{"render", in, "-r", "xml", "--no-cache"}, errors.ErrCodeUnknownRenderer},
		{"malformed snapshot", []string{"render", bad}, errors.ErrCodeValidation},
		{"bad diagram format", []string{"diagram", in, "-f", "gif"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	isolate(t)
	existing := starter(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"exists", []string{"new", existing}, errors.ErrCodeDuplicate},
		{"too many columns", []string{"new", "--columns", "13"}, errors.ErrCodeInvalidInput},
		{"negative rows", []string{"new", "--rows", "-1"}, errors.ErrCodeInvalidInput},
		{"unknown field type", []string{"new", "--fields", "rating"}, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := run(t, "new", existing, "--force", "--rows", "2"); err != nil {
		t.Errorf("--force: %v", err)
	}
}

func TestNewToStdout(t *testing.T) {
	isolate(t)
	out := mustRun(t, "new", "--rows", "2", "--columns", "3")
	if strings.Count(out, `"column-`) != 6 {
		t.Errorf("want six columns in:\n%s", out)
	}
}

func TestValidate(t *testing.T) {
	isolate(t)
	in := starter(t)
	if _, err := run(t, "validate", in); err != nil {
		t.Errorf("valid snapshot: %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"rows": [{"id": "row-1", "columns": [{"id": "column-1", "width": 13}]}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "validate", in, bad)
	if !errors.Is(err, errors.ErrCodeValidation) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeValidation)
	}
}

func TestDiagramDOT(t *testing.T) {
	isolate(t)
	in := starter(t)
	out := mustRun(t, "diagram", in, "-f", "dot", "-o", "-", "--no-cache")
	if !strings.HasPrefix(out, "digraph") {
		t.Errorf("dot output = %q", out)
	}
	for _, id := range []string{"row-1", "column-1", "input-text-1"} {
		if !strings.Contains(out, id) {
			t.Errorf("diagram misses %s", id)
		}
	}
}

func TestCatalogCommand(t *testing.T) {
	isolate(t)
	out := mustRun(t, "catalog", "--category", "input")
	if !strings.Contains(out, "input-text") {
		t.Errorf("catalog misses input-text:\n%s", out)
	}
	if strings.Contains(out, "button-submit") {
		t.Errorf("category filter leaked actions:\n%s", out)
	}

	_, err := run(t, "catalog", "--category", "widgets")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestCustomCatalog(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "catalog.toml")
	toml := `[element.row]
id = "row"
label = "Row"
category = "layout"
tag = "div"

[element.column]
id = "column"
label = "Column"
category = "layout"
tag = "div"

[element.rating]
id = "rating"
label = "Rating"
category = "input"
tag = "input"
properties = { id = "", name = "", type = "range" }
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}
	out := mustRun(t, "catalog", "--catalog", path)
	if !strings.Contains(out, "rating") || strings.Contains(out, "input-text") {
		t.Errorf("custom catalog output:\n%s", out)
	}
}

func TestRenderersCommand(t *testing.T) {
	isolate(t)
	out := mustRun(t, "renderers")
	for _, name := range []string{"html", "bootstrap", "tailwind", "preview"} {
		if !strings.Contains(out, name) {
			t.Errorf("renderers misses %s:\n%s", name, out)
		}
	}
}

func TestConfigFile(t *testing.T) {
	isolate(t)
	in := starter(t)

	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := "[render]\nrenderer = \"bootstrap\"\n\n[cache]\nenabled = false\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, "render", in)
	if !strings.Contains(out, "col-md-12") {
		t.Errorf("config renderer not applied:\n%s", out)
	}
	out = mustRun(t, "render", in, "-r", "html")
	if strings.Contains(out, "col-md-12") {
		t.Errorf("flag should override config:\n%s", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[render]\ncolour = \"red\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--config", bad, "renderers"); !errors.Is(err, errors.ErrCodeValidation) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeValidation)
	}
}
