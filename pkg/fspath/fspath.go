// Package fspath provides the small set of filesystem path helpers shared
// by package resolution and module inspection.
package fspath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ModuleAbsolutePath turns a module name into the absolute path of its
// distributable file. Relative names resolve under libDir; any extension on
// the input is normalized to .js, since that is the only form the compiler
// package ships.
func ModuleAbsolutePath(name, libDir string) string {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(libDir, path)
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".js"
}

// MkdirIfNotExist creates dir and any missing parents. Calling it on an
// existing directory is a no-op.
func MkdirIfNotExist(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
