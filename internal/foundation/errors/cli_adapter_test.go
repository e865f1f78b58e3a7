package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: 0,
		},
		{
			name:     "classified validation error",
			err:      NewError(CategoryValidation, "invalid input").Build(),
			expected: 2,
		},
		{
			name:     "manifest missing",
			err:      ManifestError("manifest not found").Build(),
			expected: 3,
		},
		{
			name:     "config error",
			err:      ConfigError("bad config").Build(),
			expected: 7,
		},
		{
			name:     "wrapped storage error",
			err:      fmt.Errorf("record run: %w", StorageError("insert failed").Build()),
			expected: 11,
		},
		{
			name:     "unclassified error",
			err:      &customError{msg: "unknown error"},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.ExitCodeFor(tt.err)
			if got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "internal error hidden in non-verbose mode",
			err:      InternalError("internal issue").Build(),
			expected: "Internal error occurred (use -v for details)",
		},
		{
			name:     "path context is shown",
			err:      ManifestError("manifest not found").WithContext("path", "site.json").Build(),
			expected: "Error: manifest not found (site.json)",
		},
		{
			name:     "unclassified error",
			err:      &customError{msg: "boom"},
			expected: "Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.FormatError(tt.err)
			if got != tt.expected {
				t.Errorf("FormatError() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_VerboseShowsFullError(t *testing.T) {
	adapter := NewCLIErrorAdapter(true, slog.Default())
	err := ConfigError("bad config").Build()

	if got := adapter.FormatError(err); got != "[config:fatal] bad config" {
		t.Errorf("FormatError() = %q", got)
	}
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}

func TestCLIErrorAdapter_Handle(t *testing.T) {
	var out, logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out

	if code := adapter.Handle(nil); code != ExitOK {
		t.Fatalf("Handle(nil) = %d", code)
	}
	if out.Len() != 0 {
		t.Fatalf("nil error printed %q", out.String())
	}

	err := FileSystemError("content root not found").WithContext("path", "content").Build()
	if code := adapter.Handle(err); code != ExitInputMissing {
		t.Errorf("Handle() = %d, want %d", code, ExitInputMissing)
	}
	if got := out.String(); got != "Error: content root not found (content)\n" {
		t.Errorf("printed %q", got)
	}
	if !strings.Contains(logs.String(), "category=filesystem") || !strings.Contains(logs.String(), "path=content") {
		t.Errorf("log record missing attributes: %q", logs.String())
	}

	logs.Reset()
	adapter.Handle(PublishError("nats down").Warning().Build())
	if logs.Len() != 0 {
		t.Errorf("non-fatal error logged in quiet mode: %q", logs.String())
	}
}
