// Package errors provides the classified error primitives used for structural
// failures in sitelint.
//
// Content problems found while scanning documents are not errors in the Go
// sense; they are report.Issue values. This package covers the failures that
// abort a run before or during loading: unreadable configuration, a missing
// or malformed site manifest, an absent content root, a broken history store.
//
// Key features:
//   - ErrorCategory: broad classification (config, manifest, filesystem, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLIErrorAdapter: exit code mapping and presentation for the CLI
//
// Example usage:
//
//	err := errors.WrapError(readErr, errors.CategoryManifest, "manifest unreadable").
//		Fatal().
//		WithPath(manifestPath).
//		Build()
package errors
