// Package app contains the core application logic. It owns the validation
// run lifecycle: resolving extensions, importing modules into a fresh
// registry, evaluating the rule catalog, and reporting, decoupled from any
// specific entrypoint like a CLI.
package app
