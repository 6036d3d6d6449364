// Package tspkg locates and validates an installed typescript compiler
// package on disk.
package tspkg

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"tspatch/pkg/fspath"
	"tspatch/pkg/patchcfg"
)

// PackageName is the manifest name an installation must declare to be
// accepted. Anything else is a foreign package that happens to share the
// manifest shape.
const PackageName = "typescript"

const manifestFileName = "package.json"

// DefaultModules lists the distributable modules the compiler package
// ships in its lib directory.
var DefaultModules = []string{
	"tsc.js",
	"tsserver.js",
	"tsserverlibrary.js",
	"typescript.js",
	"typescriptServices.js",
}

// Package describes a located, validated compiler package installation.
type Package struct {
	Version     string           `json:"version"`
	PackageFile string           `json:"package_file"`
	PackageDir  string           `json:"package_dir"`
	LibDir      string           `json:"lib_dir"`
	Config      *patchcfg.Config `json:"-"`
}

// ResolveOptions carries caller context into resolution. The logger, when
// set, receives the non-fatal diagnostics emitted while loading the
// package's patch config.
type ResolveOptions struct {
	Logger *log.Logger
}

// manifest is the subset of package.json the resolver needs.
type manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Resolve locates the compiler package reachable from baseDir by walking
// ancestor node_modules directories, validates its manifest, and returns
// its descriptor with a freshly loaded patch config. An empty baseDir
// means the current working directory. All failures are *PackageError.
func Resolve(baseDir string, opts ResolveOptions) (*Package, error) {
	var err error
	if baseDir == "" {
		baseDir, err = os.Getwd()
	} else {
		baseDir, err = filepath.Abs(baseDir)
	}
	if err != nil {
		return nil, &PackageError{Message: "resolve base directory", Err: err}
	}

	exists, err := fspath.DirExists(baseDir)
	if err != nil {
		return nil, &PackageError{Dir: baseDir, Message: "not a valid directory", Err: err}
	}
	if !exists {
		return nil, &PackageError{Dir: baseDir, Message: "not a valid directory"}
	}

	manifestFile, ok := findManifest(baseDir)
	if !ok {
		return nil, &PackageError{Dir: baseDir, Message: "could not find the " + PackageName + " package"}
	}

	contents, err := os.ReadFile(manifestFile)
	if err != nil {
		return nil, &PackageError{Dir: baseDir, Message: "could not read " + manifestFile, Err: err}
	}

	var m manifest
	if err := json.Unmarshal(contents, &m); err != nil {
		return nil, &PackageError{Dir: baseDir, Message: "could not parse json data in " + manifestFile, Err: err}
	}
	if m.Name != PackageName {
		return nil, &PackageError{
			Dir:     baseDir,
			Message: fmt.Sprintf("expected package name %q but found %q in %s", PackageName, m.Name, manifestFile),
		}
	}

	packageDir := filepath.Dir(manifestFile)
	return &Package{
		Version:     m.Version,
		PackageFile: manifestFile,
		PackageDir:  packageDir,
		LibDir:      filepath.Join(packageDir, "lib"),
		Config:      patchcfg.Load(packageDir, patchcfg.LoadOptions{Logger: opts.Logger}),
	}, nil
}

// findManifest applies node module-resolution rules: from dir up to the
// filesystem root, the first node_modules/typescript/package.json wins.
func findManifest(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, "node_modules", PackageName, manifestFileName)
		if exists, err := fspath.FileExists(candidate); err == nil && exists {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
