// Package inspect determines whether a compiler module file carries the
// patchable wrapper signature and, when it does, which patch version is
// already embedded in it.
package inspect

import (
	"os"
	"path/filepath"
	"regexp"

	"tspatch/pkg/fspath"
)

// The compiler build emits each distributable module as a single IIFE over
// its namespace, closed by the `ns || (ns = {})` fallback idiom. The whole
// file must be that one expression; a wrapper embedded in other code is not
// eligible for patching. Both patterns are a contract against upstream
// build output; if the format drifts, detection fails closed rather than
// mis-detecting.
const (
	wrapperSignature = `(?s)\A\(function\s*\(\w+\)\s*\{.*\}\s*\)\s*\(\w+\s*\|\|\s*\(\w+\s*=\s*\{\}\)\);?\s*\z`
	versionMarker    = "(?m)^\\s*var\\s+tspVersion\\s*=\\s*['\"`]([^'\"`]+)['\"`]"
)

var (
	wrapperPattern = regexp.MustCompile(wrapperSignature)
	versionPattern = regexp.MustCompile(versionMarker)
)

// Module describes one inspected module file.
type Module struct {
	File     string `json:"file"`
	Filename string `json:"filename"`
	Dir      string `json:"dir"`
	// CanPatch is true iff the file matches the patchable wrapper shape.
	CanPatch bool `json:"can_patch"`
	// PatchVersion is the embedded tspVersion marker value. It is empty
	// when the module is patchable but carries no marker, and meaningless
	// when CanPatch is false.
	PatchVersion string `json:"patch_version,omitempty"`
	// Source holds the raw module text. Populated only when requested and
	// the module is patchable.
	Source string `json:"-"`
}

// Patched reports whether the module already carries an applied patch.
func (m Module) Patched() bool {
	return m.CanPatch && m.PatchVersion != ""
}

// Inspect reads the module file at path and classifies it. A missing file
// yields a *FileNotFoundError. Set includeSrc to also receive the raw text
// of patchable modules.
func Inspect(path string, includeSrc bool) (Module, error) {
	exists, err := fspath.FileExists(path)
	if err != nil {
		return Module{}, err
	}
	if !exists {
		return Module{}, &FileNotFoundError{Path: path}
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return Module{}, err
	}

	m := Module{
		File:     path,
		Filename: filepath.Base(path),
		Dir:      filepath.Dir(path),
	}

	src := string(contents)
	m.CanPatch = wrapperPattern.MatchString(src)
	if !m.CanPatch {
		return m, nil
	}

	if match := versionPattern.FindStringSubmatch(src); match != nil {
		m.PatchVersion = match[1]
	}
	if includeSrc {
		m.Source = src
	}
	return m, nil
}
