// Package registry owns the process's view of "what components exist": a
// mapping from qualified component name to its descriptor, with a secondary
// kind index for rule scoping.
//
// A Registry is always an instance, never package state. Each validation run
// builds its own so that runs are isolated; a long-lived host process may
// keep a single instance alive for its own lifetime, but correctness never
// depends on that.
//
// Registration is explicit: extension modules receive the Registry and call
// Register on it. Registering identical content twice is a no-op; divergent
// content for the same name is a ConflictError, never a silent overwrite.
package registry
