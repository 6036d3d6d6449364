// Package patchcfg persists the record of which compiler modules have been
// patched for a given package installation.
package patchcfg

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// ToolVersion is the current tool version, recorded in freshly created
// patch configs.
const ToolVersion = "1.4.5"

// FileName is the config's backing file, stored inside the package root.
const FileName = "ts-patch.json"

// Config is the persisted patch state for one package directory. Persist
// and Modules are freely mutable; the backing file path and the recorded
// version are fixed at load time.
type Config struct {
	// Persist marks whether the downstream patch tool should re-apply
	// patches after package manager operations.
	Persist bool
	// Modules maps a module filename to the modified-time marker recorded
	// when it was patched.
	Modules map[string]int64

	file    string
	version string
}

// LoadOptions controls diagnostics during load. Callers in a CLI context
// pass a logger so corrupt-file warnings reach the user; library callers
// may leave it nil for silent defaulting.
type LoadOptions struct {
	Logger *log.Logger
}

// configFile mirrors the on-disk schema. Pointer fields distinguish absent
// keys from zero values so loaded data always wins over defaults; unknown
// keys are dropped by the decoder and never written back.
type configFile struct {
	Version *string          `json:"version,omitempty"`
	Persist *bool            `json:"persist"`
	Modules map[string]int64 `json:"modules"`
}

// Load reads the patch config stored in packageDir. A missing file yields
// the default config. A file that cannot be parsed is reported through
// opts.Logger and likewise yields the default config: stale or foreign
// patch bookkeeping must never block package resolution.
func Load(packageDir string, opts LoadOptions) *Config {
	path := filepath.Join(packageDir, FileName)
	cfg := &Config{
		Persist: false,
		Modules: map[string]int64{},
		file:    path,
		version: ToolVersion,
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	var loaded configFile
	if err := json.Unmarshal(contents, &loaded); err != nil {
		if opts.Logger != nil {
			opts.Logger.Printf("warning: could not parse %s (%v), starting from defaults", path, err)
		}
		return cfg
	}

	if loaded.Version != nil {
		cfg.version = *loaded.Version
	}
	if loaded.Persist != nil {
		cfg.Persist = *loaded.Persist
	}
	if loaded.Modules != nil {
		cfg.Modules = loaded.Modules
	}
	return cfg
}

// File returns the absolute path of the config's backing file.
func (c *Config) File() string {
	return c.file
}

// Version returns the tool version the config was created with.
func (c *Config) Version() string {
	return c.version
}

// Save overwrites the backing file with the current state. The write goes
// through a temp file and rename so a crash cannot leave a half-written
// config behind. Failures surface as *FileWriteError.
func (c *Config) Save() error {
	out := configFile{
		Version: &c.version,
		Persist: &c.Persist,
		Modules: c.Modules,
	}
	if out.Modules == nil {
		out.Modules = map[string]int64{}
	}

	buf, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return &FileWriteError{Path: c.file, Err: err}
	}

	tmp := c.file + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return &FileWriteError{Path: c.file, Err: err}
	}
	if err := os.Rename(tmp, c.file); err != nil {
		return &FileWriteError{Path: c.file, Err: err}
	}
	return nil
}
