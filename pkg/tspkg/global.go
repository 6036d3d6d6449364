package tspkg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// ResolveGlobal locates the globally installed compiler package. The
// global prefix root and its lib subdirectory are both legitimate
// installation roots depending on the host toolchain version, so both are
// probed; every candidate failure is retained and joined into the single
// error raised when neither yields a package.
func ResolveGlobal(ctx context.Context, opts ResolveOptions) (*Package, error) {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}

	prefix, err := globalPrefix(ctx)
	if err != nil {
		return nil, &PackageError{Message: "could not determine the global package prefix", Err: err}
	}

	var candidateErrs []error
	for _, dir := range []string{prefix, filepath.Join(prefix, "lib")} {
		pkg, err := Resolve(dir, opts)
		if err != nil {
			candidateErrs = append(candidateErrs, err)
			continue
		}
		return pkg, nil
	}

	return nil, &PackageError{
		Dir:     prefix,
		Message: "could not find a globally installed " + PackageName + " package",
		Err:     errors.Join(candidateErrs...),
	}
}

// globalPrefix determines the package manager's global installation
// prefix: environment overrides first, then the package manager itself,
// then the conventional per-OS default.
func globalPrefix(ctx context.Context) (string, error) {
	for _, key := range []string{"NPM_CONFIG_PREFIX", "PREFIX"} {
		if value := os.Getenv(key); value != "" {
			abs, err := filepath.Abs(value)
			if err != nil {
				return "", fmt.Errorf("resolve %s: %w", key, err)
			}
			return abs, nil
		}
	}

	if path, err := exec.LookPath("npm"); err == nil {
		out, err := exec.CommandContext(ctx, path, "config", "get", "prefix").Output()
		if err == nil {
			if prefix := strings.TrimSpace(string(out)); prefix != "" {
				return prefix, nil
			}
		}
	}

	return defaultPrefix()
}

func defaultPrefix() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "npm"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("detect user home: %w", err)
		}
		return filepath.Join(home, "AppData", "Roaming", "npm"), nil
	default:
		return "/usr/local", nil
	}
}
