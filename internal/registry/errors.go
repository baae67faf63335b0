package registry

import "fmt"

// ConflictError reports a registration under an already-taken qualified name
// with materially different content. The existing entry is kept; the caller
// surfaces the conflict as a diagnostic.
type ConflictError struct {
	QualifiedName    string
	ExistingLocation string
	IncomingLocation string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("component %q already registered by %s with different content (conflicting registration from %s)",
		e.QualifiedName, orUnknown(e.ExistingLocation), orUnknown(e.IncomingLocation))
}

// ImportError reports that a module failed to register its components. It is
// fatal to that module only; the surrounding run keeps importing the rest of
// the scope.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("importing module %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func orUnknown(location string) string {
	if location == "" {
		return "unknown module"
	}
	return location
}
