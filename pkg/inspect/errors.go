package inspect

// FileNotFoundError reports that a module file requested for inspection
// does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return "file not found: " + e.Path
}
