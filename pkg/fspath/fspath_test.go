package fspath

import (
	"os"
	"path/filepath"
	"testing"
)

func TestModuleAbsolutePathRelative(t *testing.T) {
	got := ModuleAbsolutePath("foo", "/lib")
	want := filepath.Join("/lib", "foo.js")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestModuleAbsolutePathNormalizesExtension(t *testing.T) {
	got := ModuleAbsolutePath("/abs/foo.ts", "/lib")
	want := filepath.Join("/abs", "foo.js")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestModuleAbsolutePathKeepsJS(t *testing.T) {
	got := ModuleAbsolutePath("tsc.js", "/lib")
	want := filepath.Join("/lib", "tsc.js")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestMkdirIfNotExistIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := MkdirIfNotExist(dir); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := MkdirIfNotExist(dir); err != nil {
		t.Fatalf("second create: %v", err)
	}

	exists, err := DirExists(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !exists {
		t.Fatal("expected directory to exist")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	exists, err := FileExists(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected file to exist")
	}

	exists, err = FileExists(filepath.Join(dir, "missing.txt"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected file to be missing")
	}

	exists, err = FileExists(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("directory should not count as a file")
	}
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()

	exists, err := DirExists(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected directory to exist")
	}

	exists, err = DirExists(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected directory to be missing")
	}
}
