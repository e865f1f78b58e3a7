package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

// PathKey is the context key holding the file or directory an error is about.
const PathKey = "path"

// ClassifiedError is a structural failure with a category, a severity and
// free-form context. The cause, when present, is reachable through Unwrap.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

func (e *ClassifiedError) Error() string {
	head := fmt.Sprintf("[%s:%s] %s", e.category, e.severity, e.message)
	if e.cause == nil {
		return head
	}
	return head + ": " + e.cause.Error()
}

func (e *ClassifiedError) Unwrap() error { return e.cause }
func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }
func (e *ClassifiedError) Message() string { return e.message }
func (e *ClassifiedError) Cause() error { return e.cause }
func (e *ClassifiedError) Context() ErrorContext { return e.context }
func (e *ClassifiedError) IsFatal() bool { return e.severity == SeverityFatal }
func (e *ClassifiedError) IsCategory(c ErrorCategory) bool { return e.category == c }

// Path returns the path context value, if any.
func (e *ClassifiedError) Path() (string, bool) {
	return e.context.GetString(PathKey)
}

// WithContext returns a copy of e with key set; e is left untouched.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	clone := *e
	clone.context = e.context.Merge(ErrorContext{key: value})
	return &clone
}

// Is matches another ClassifiedError with the same category and message.
func (e *ClassifiedError) Is(target error) bool {
	other, ok := target.(*ClassifiedError)
	return ok && e.category == other.category && e.message == other.message
}

// Attrs renders the category, cause and context as slog attributes, context
// keys in sorted order.
func (e *ClassifiedError) Attrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("category", string(e.category))}
	if e.cause != nil {
		attrs = append(attrs, slog.String("cause", e.cause.Error()))
	}
	for _, key := range slices.Sorted(maps.Keys(e.context)) {
		attrs = append(attrs, slog.Any(key, e.context[key]))
	}
	return attrs
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// IsClassified reports whether err's chain holds a ClassifiedError.
func IsClassified(err error) bool {
	_, ok := AsClassified(err)
	return ok
}

// HasCategory reports whether the first ClassifiedError in err's chain has
// the given category.
func HasCategory(err error, category ErrorCategory) bool {
	classified, ok := AsClassified(err)
	return ok && classified.IsCategory(category)
}

// GetCategory extracts the category from an error. Unclassified errors are
// CategoryInternal.
func GetCategory(err error) ErrorCategory {
	if classified, ok := AsClassified(err); ok {
		return classified.category
	}
	return CategoryInternal
}
