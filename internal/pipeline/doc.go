// Package pipeline parses declarative pipeline documents and extracts the
// component references they make. Two formats are supported: the native HCL
// form (step blocks naming a component and an instance) and the YAML form
// used by pipeline authors coming from configuration-first tooling. Both
// translate into the same format-agnostic Document, so the extractor and the
// rule engine never see format details.
//
// Parsing never imports or executes anything; it only reads names and
// parameter values. Scoped validation builds on that: a pipeline's component
// references tell the run which modules to import, nothing more.
package pipeline
