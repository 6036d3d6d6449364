package patchcfg

import "fmt"

// FileWriteError reports that the patch config could not be durably
// written. It carries the target path and wraps the underlying failure.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("could not write config file %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error {
	return e.Err
}
