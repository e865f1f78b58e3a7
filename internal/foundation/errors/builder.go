package errors

// ErrorBuilder assembles a ClassifiedError. Severity defaults to
// SeverityError; the category helpers below pick the usual severity for
// their category.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError starts a builder for category with message.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  ErrorContext{},
	}}
}

// WrapError starts a builder whose error wraps cause.
func WrapError(cause error, category ErrorCategory, message string) *ErrorBuilder {
	b := NewError(category, message)
	b.err.cause = cause
	return b
}

func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context = b.err.context.Set(key, value)
	return b
}

// WithPath records the file or directory the error is about. The CLI
// adapter shows it next to the message.
func (b *ErrorBuilder) WithPath(path string) *ErrorBuilder {
	return b.WithContext(PathKey, path)
}

func (b *ErrorBuilder) Fatal() *ErrorBuilder { return b.WithSeverity(SeverityFatal) }
func (b *ErrorBuilder) Warning() *ErrorBuilder { return b.WithSeverity(SeverityWarning) }

// Build returns the error. The builder may be reused; later changes do not
// affect errors already built.
func (b *ErrorBuilder) Build() *ClassifiedError {
	out := b.err
	out.context = ErrorContext{}.Merge(b.err.context)
	return &out
}

// ConfigError: invalid sitelint.yaml or flags. Fatal.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).Fatal()
}

// ManifestError: missing, unparseable or schema-invalid site manifest. Fatal.
func ManifestError(message string) *ErrorBuilder {
	return NewError(CategoryManifest, message).Fatal()
}

// FileSystemError: content root or asset directory problems. Fatal.
func FileSystemError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message).Fatal()
}

// StorageError: run history failures.
func StorageError(message string) *ErrorBuilder {
	return NewError(CategoryStorage, message)
}

// PublishError: report event delivery failures. Runs never fail on these.
func PublishError(message string) *ErrorBuilder {
	return NewError(CategoryPublish, message).Warning()
}

func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).Fatal()
}
