package tspkg

// PackageError reports a failure to locate or validate the compiler
// package. Dir is the directory resolution started from, when known, and
// Err wraps the underlying cause (for global resolution, the joined errors
// of every candidate location).
type PackageError struct {
	Dir     string
	Message string
	Err     error
}

func (e *PackageError) Error() string {
	if e.Dir != "" {
		return e.Message + " (searched from " + e.Dir + ")"
	}
	return e.Message
}

func (e *PackageError) Unwrap() error {
	return e.Err
}
