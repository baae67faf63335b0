// Package cli turns command-line arguments into an app.Config: it parses
// and validates flags, composes the validation scope from the target flags
// and positional arguments, and owns the process exit codes that separate
// lint failures from usage and engine errors.
package cli
