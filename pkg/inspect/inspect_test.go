package inspect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const patchedModule = `(function (ts) {
    var tspVersion = '1.2.3';
    ts.version = "4.5.2";
})(ts || (ts = {}));
`

const unpatchedModule = `(function (ts) {
    ts.version = "4.5.2";
})(ts || (ts = {}));
`

func writeModule(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInspectPatchedModule(t *testing.T) {
	path := writeModule(t, "typescript.js", patchedModule)

	m, err := Inspect(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.CanPatch {
		t.Fatal("expected CanPatch = true")
	}
	if m.PatchVersion != "1.2.3" {
		t.Fatalf("expected patch version 1.2.3, got %q", m.PatchVersion)
	}
	if !m.Patched() {
		t.Fatal("expected Patched() = true")
	}
	if m.Filename != "typescript.js" {
		t.Fatalf("expected filename typescript.js, got %q", m.Filename)
	}
	if m.Dir != filepath.Dir(path) {
		t.Fatalf("expected dir %s, got %s", filepath.Dir(path), m.Dir)
	}
}

func TestInspectSingleLineWrapper(t *testing.T) {
	path := writeModule(t, "m.js", `(function (ns) { ... })(ns || (ns = {}));`)

	m, err := Inspect(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.CanPatch {
		t.Fatal("expected CanPatch = true for the wrapper idiom")
	}
	if m.PatchVersion != "" {
		t.Fatalf("expected no patch version, got %q", m.PatchVersion)
	}
	if m.Patched() {
		t.Fatal("expected Patched() = false without a version marker")
	}
}

func TestInspectDoubleQuotedMarker(t *testing.T) {
	src := "(function (ts) {\nvar tspVersion = \"2.0.0\";\n})(ts || (ts = {}));"
	path := writeModule(t, "tsc.js", src)

	m, err := Inspect(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PatchVersion != "2.0.0" {
		t.Fatalf("expected patch version 2.0.0, got %q", m.PatchVersion)
	}
}

func TestInspectNonPatchable(t *testing.T) {
	path := writeModule(t, "script.js", "console.log('hi')\n")

	m, err := Inspect(path, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.CanPatch {
		t.Fatal("expected CanPatch = false")
	}
	if m.PatchVersion != "" {
		t.Fatalf("expected empty patch version, got %q", m.PatchVersion)
	}
	if m.Source != "" {
		t.Fatal("source must not be exposed for non-patchable modules")
	}
}

func TestInspectIncludeSource(t *testing.T) {
	path := writeModule(t, "typescript.js", patchedModule)

	m, err := Inspect(path, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Source != patchedModule {
		t.Fatal("expected raw source to be attached")
	}

	m, err = Inspect(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Source != "" {
		t.Fatal("expected source to be omitted when not requested")
	}
}

func TestInspectMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.js")

	_, err := Inspect(path, false)
	var notFound *FileNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected FileNotFoundError, got %v", err)
	}
	if notFound.Path != path {
		t.Fatalf("expected error path %s, got %s", path, notFound.Path)
	}
}

func TestInspectRejectsWrapperEmbeddedInOtherCode(t *testing.T) {
	wrapper := `(function (ns) { ... })(ns || (ns = {}));`
	cases := map[string]string{
		"leading.js":    "console.log('hi');\n" + wrapper + "\n",
		"trailing.js":   wrapper + "\nconsole.log('hi');\n",
		"surrounded.js": "console.log('hi');\n" + wrapper + "\nconsole.log('bye');\n",
	}

	for name, contents := range cases {
		path := writeModule(t, name, contents)

		m, err := Inspect(path, false)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if m.CanPatch {
			t.Errorf("%s: expected CanPatch = false when the wrapper is only part of the file", name)
		}
	}
}

func TestInspectUnpatchedWrapper(t *testing.T) {
	path := writeModule(t, "tsserver.js", unpatchedModule)

	m, err := Inspect(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.CanPatch {
		t.Fatal("expected CanPatch = true")
	}
	if m.Patched() {
		t.Fatal("expected Patched() = false")
	}
}
