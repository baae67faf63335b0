package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rpezzi/pipelint/internal/component"
	"github.com/rpezzi/pipelint/internal/ctxlog"
	"github.com/rpezzi/pipelint/internal/engine"
	"github.com/rpezzi/pipelint/internal/extension"
	"github.com/rpezzi/pipelint/internal/fsutil"
	"github.com/rpezzi/pipelint/internal/pipeline"
	"github.com/rpezzi/pipelint/internal/registry"
	"github.com/rpezzi/pipelint/internal/report"
	"github.com/rpezzi/pipelint/internal/rules"
)

// ErrValidationFailed is returned when a run completes normally but at least
// one error-severity diagnostic was reported. It separates "the lint found
// problems" from "the lint could not run".
var ErrValidationFailed = errors.New("validation failed")

// Run executes one validation pass over the configured scope.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.ExportPath != "" {
		return a.exportContracts()
	}

	run, err := a.validate(ctx)
	if err != nil {
		return err
	}

	if a.config.JSON {
		if err := report.WriteRecords(a.outW, run); err != nil {
			return err
		}
	} else if err := report.Render(a.outW, run); err != nil {
		return err
	}

	if run.Outcome == report.OutcomeFail {
		return ErrValidationFailed
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// exportContracts writes the rule catalog to the configured path, or to the
// run's output writer for "-".
func (a *App) exportContracts() error {
	if a.config.ExportPath == "-" {
		return report.ExportCatalog(a.outW, a.catalog)
	}
	f, err := os.Create(a.config.ExportPath)
	if err != nil {
		return fmt.Errorf("creating contract export: %w", err)
	}
	defer f.Close()
	if err := report.ExportCatalog(f, a.catalog); err != nil {
		return err
	}
	return f.Close()
}

// validate builds the scope, imports every module it needs into a fresh
// registry, and evaluates the rule catalog. Aborting errors (unknown
// extension, unparseable document) come back as errors; everything else
// becomes diagnostics in the returned run.
func (a *App) validate(ctx context.Context) (report.Run, error) {
	loader := extension.NewLoader(a.resolver)

	var modules []registry.Module
	included := make(map[string]struct{})
	add := func(m registry.Module) {
		if _, ok := included[m.Path()]; ok {
			return
		}
		included[m.Path()] = struct{}{}
		modules = append(modules, m)
	}

	// Modules the user named explicitly, directly or through an extension.
	// Their components are always linted; modules imported only because a
	// pipeline document referenced one of their components are not.
	direct := make(map[string]struct{})

	for _, name := range a.config.Extensions {
		ext, desc, err := loader.Load(name)
		if err != nil {
			return report.Run{}, err
		}
		a.logger.Debug("Extension resolved.", "extension", name, "modules", desc.OwnedModules)
		for _, m := range ext.Modules() {
			add(m)
			direct[m.Path()] = struct{}{}
		}
	}

	for _, path := range a.config.Modules {
		m, ok := a.resolver.Module(path)
		if !ok {
			return report.Run{}, fmt.Errorf("module %q not provided by any registered extension (known: %s)",
				path, strings.Join(a.resolver.ModulePaths(), ", "))
		}
		add(m)
		direct[m.Path()] = struct{}{}
	}

	var refs []string
	if len(a.config.Targets) > 0 {
		paths, err := fsutil.ExpandTargets(a.config.Targets)
		if err != nil {
			return report.Run{}, err
		}
		refs, _, err = pipeline.ExtractComponents(ctx, paths)
		if err != nil {
			return report.Run{}, err
		}
		a.logger.Debug("Pipeline documents parsed.", "documents", len(paths), "components", len(refs))

		// Pull in just the modules the documents reference. Names that
		// resolve to no known module stay in scope for RC001 to flag.
		for _, ref := range refs {
			path, err := registry.ModuleOf(ref)
			if err != nil {
				continue
			}
			if m, ok := a.resolver.Module(path); ok {
				add(m)
			}
		}
	}

	reg := registry.New()
	failures := loader.RegisterModules(ctx, reg, modules)

	// Registered components may declare data types from modules nobody asked
	// for directly. Import those defining modules too, in waves, so the
	// interface-contract rules see every resolvable type without pulling in
	// an extension's entire surface.
	for {
		wave := a.typeRefModules(reg, included)
		if len(wave) == 0 {
			break
		}
		failures = append(failures, loader.RegisterModules(ctx, reg, wave)...)
	}

	snap := reg.Snapshot()
	a.logger.Debug("Registry populated.", "components", snap.Len(), "failures", len(failures))

	scope := rules.Scope{
		PipelineRefs:  refs,
		WholeRegistry: len(a.config.Targets) == 0,
	}
	if scope.WholeRegistry {
		scope.Descriptors = snap.Descriptors()
	} else {
		scope.Descriptors = scopedDescriptors(snap, refs, direct)
	}

	opts := engine.Options{Workers: a.config.Workers, Trace: a.config.LogLevel == "debug"}
	diagnostics, err := engine.Evaluate(ctx, scope, snap, a.catalog, opts)
	if err != nil {
		return report.Run{}, err
	}

	all := append(failureDiagnostics(failures), diagnostics...)
	return report.NewRun(a.scopeDescription(), all), nil
}

// scopedDescriptors narrows a pipeline-scoped run to the components the
// documents reference, plus every component of explicitly requested modules.
// Imports are module-granular, so resolving one reference drags in the
// module's siblings; those stay in the snapshot for reference and type
// resolution but are not themselves linted.
func scopedDescriptors(snap *registry.Snapshot, refs []string, direct map[string]struct{}) []component.Descriptor {
	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		referenced[ref] = struct{}{}
	}

	var in []component.Descriptor
	for _, d := range snap.Descriptors() {
		if _, ok := referenced[d.QualifiedName]; ok {
			in = append(in, d)
			continue
		}
		if _, ok := direct[d.SourceLocation]; ok {
			in = append(in, d)
		}
	}
	return in
}

// typeRefModules collects the modules defining data types that registered
// components reference but that are not yet imported or queued.
func (a *App) typeRefModules(reg *registry.Registry, included map[string]struct{}) []registry.Module {
	var wave []registry.Module
	snap := reg.Snapshot()
	for _, d := range snap.Descriptors() {
		for _, key := range []string{component.MetaInputType, component.MetaOutputType, component.MetaElementType} {
			name, ok := d.Meta(key)
			if !ok {
				continue
			}
			if _, registered := snap.Lookup(name); registered {
				continue
			}
			path, err := registry.ModuleOf(name)
			if err != nil {
				continue
			}
			if _, queued := included[path]; queued {
				continue
			}
			if m, known := a.resolver.Module(path); known {
				included[path] = struct{}{}
				wave = append(wave, m)
			}
		}
	}
	return wave
}

// failureDiagnostics maps loader failures onto the reserved codes: a
// registration conflict is pinned to the contested component, any other
// import failure to the module that broke.
func failureDiagnostics(failures []extension.ImportFailure) []engine.Diagnostic {
	var diagnostics []engine.Diagnostic
	for _, f := range failures {
		var conflict *registry.ConflictError
		if errors.As(f.Err, &conflict) {
			diagnostics = append(diagnostics, engine.Diagnostic{
				RuleCode:  rules.CodeRegistrationConflict,
				Severity:  rules.SeverityError,
				Component: conflict.QualifiedName,
				Message:   conflict.Error(),
				Location:  f.Module,
			})
			continue
		}
		diagnostics = append(diagnostics, engine.Diagnostic{
			RuleCode:  rules.CodeImportFailure,
			Severity:  rules.SeverityError,
			Component: f.Module,
			Message:   fmt.Sprintf("module import failed: %v", f.Err),
			Location:  f.Module,
		})
	}
	return diagnostics
}

func (a *App) scopeDescription() string {
	var parts []string
	if len(a.config.Extensions) > 0 {
		parts = append(parts, "extensions "+strings.Join(a.config.Extensions, ","))
	}
	if len(a.config.Modules) > 0 {
		parts = append(parts, "modules "+strings.Join(a.config.Modules, ","))
	}
	if len(a.config.Targets) > 0 {
		parts = append(parts, "pipelines "+strings.Join(a.config.Targets, ","))
	}
	return strings.Join(parts, "; ")
}
