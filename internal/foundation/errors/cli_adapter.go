package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Process exit codes.
const (
	ExitOK               = 0
	ExitValidationFailed = 1 // run completed with error findings; also unclassified errors
	ExitUsage            = 2
	ExitInputMissing     = 3
	ExitConfig           = 7
	ExitInternal         = 10
	ExitIntegration      = 11
	ExitRuntime          = 12
)

var exitCodes = map[ErrorCategory]int{
	CategoryValidation: ExitUsage,
	CategoryManifest:   ExitInputMissing,
	CategoryFileSystem: ExitInputMissing,
	CategoryNotFound:   ExitInputMissing,
	CategoryConfig:     ExitConfig,
	CategoryStorage:    ExitIntegration,
	CategoryPublish:    ExitIntegration,
	CategoryRuntime:    ExitRuntime,
	CategoryInternal:   ExitInternal,
}

// CLIErrorAdapter turns errors into a user-facing line and an exit code.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger, out: os.Stderr}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	if classified, ok := AsClassified(err); ok {
		if code, known := exitCodes[classified.Category()]; known {
			return code
		}
	}
	return ExitValidationFailed
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}

	switch {
	case a.verbose:
		return classified.Error()
	case classified.Category() == CategoryInternal:
		return "Internal error occurred (use -v for details)"
	}
	if path, ok := classified.Path(); ok {
		return fmt.Sprintf("Error: %s (%s)", classified.Message(), path)
	}
	return "Error: " + classified.Message()
}

// Handle logs and prints err, returning the exit code. A nil error prints
// nothing.
func (a *CLIErrorAdapter) Handle(err error) int {
	if err == nil {
		return ExitOK
	}
	if a.shouldLog(err) {
		a.logError(err)
	}
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	return a.ExitCodeFor(err)
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	os.Exit(a.Handle(err))
}

// shouldLog reports whether err deserves a log record besides the printed
// line: always in verbose mode, otherwise only fatal or unclassified errors.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}
	if classified, ok := AsClassified(err); ok {
		return classified.Severity() == SeverityFatal
	}
	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}

	a.logger.LogAttrs(context.Background(), levelFor(classified.Severity()), classified.Message(), classified.Attrs()...)
}

func levelFor(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
