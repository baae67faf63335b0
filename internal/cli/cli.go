package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/rpezzi/pipelint/internal/app"
)

// Exit codes. Validation failure and engine error are distinct so CI can
// tell "the lint found problems" from "the lint could not run".
const (
	ExitPass        = 0
	ExitFail        = 1
	ExitUsage       = 2
	ExitEngineError = 3
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// listFlag collects repeatable, comma-splittable flag values.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("pipelint", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
pipelint - contract validation for pipeline component extensions.

Usage:
  pipelint [options] [PIPELINE_PATH ...]

Arguments:
  PIPELINE_PATH
    Pipeline documents (.hcl, .yaml, .yml), directories containing them,
    or glob patterns (e.g. 'grids/**/*.yaml'). Validates exactly the
    components the documents reference.

Options:
`)
		flagSet.PrintDefaults()
	}

	var extensions, modules, paths, grids, yamls listFlag
	flagSet.Var(&extensions, "extensions", "Extension name to validate whole. Repeatable.")
	flagSet.Var(&modules, "modules", "Individual module path to validate (e.g. 'strings.types'). Repeatable.")
	flagSet.Var(&paths, "paths", "Pipeline document path, directory, or glob pattern. Repeatable.")
	flagSet.Var(&grids, "grid", "HCL pipeline document or directory. Repeatable.")
	flagSet.Var(&yamls, "yaml", "YAML pipeline document or directory. Repeatable.")
	jsonFlag := flagSet.Bool("json", false, "Emit one JSON record per diagnostic instead of the text report.")
	exportFlag := flagSet.String("export-contracts", "", "Write the rule catalog as markdown to this path ('-' for stdout) and exit.")
	watchFlag := flagSet.Bool("watch", false, "Re-run validation when a pipeline document changes.")
	debugFlag := flagSet.Bool("debug", false, "Shorthand for -log-level=debug.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 8, "Number of concurrent rule-check workers.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	targets := []string(paths)
	targets = append(targets, grids...)
	targets = append(targets, yamls...)
	targets = append(targets, flagSet.Args()...)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if *debugFlag {
		logLevel = "debug"
	}

	if len(extensions) == 0 && len(modules) == 0 && len(targets) == 0 && *exportFlag == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		Extensions: extensions,
		Modules:    modules,
		Targets:    targets,
		JSON:       *jsonFlag,
		ExportPath: *exportFlag,
		Watch:      *watchFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		Workers:    *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	return config, false, nil
}
