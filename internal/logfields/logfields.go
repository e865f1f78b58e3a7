package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID       = "run_id"
	KeyPage        = "page"
	KeyRule        = "rule"
	KeyLocale      = "locale"
	KeyContentRoot = "content_root"
	KeyManifest    = "manifest"
	KeyPath        = "path"
	KeyStage       = "stage"
	KeyDurationMS  = "duration_ms"
	KeyErrors      = "errors"
	KeyWarnings    = "warnings"
	KeyScore       = "a11y_score"
	KeyDocuments   = "documents"
	KeyError       = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr          { return slog.String(KeyRunID, id) }
func Page(p string) slog.Attr            { return slog.String(KeyPage, p) }
func Rule(r string) slog.Attr            { return slog.String(KeyRule, r) }
func Locale(l string) slog.Attr          { return slog.String(KeyLocale, l) }
func ContentRoot(root string) slog.Attr  { return slog.String(KeyContentRoot, root) }
func Manifest(path string) slog.Attr     { return slog.String(KeyManifest, path) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func Errors(n int) slog.Attr             { return slog.Int(KeyErrors, n) }
func Warnings(n int) slog.Attr           { return slog.Int(KeyWarnings, n) }
func Score(s int) slog.Attr              { return slog.Int(KeyScore, s) }
func Documents(n int) slog.Attr          { return slog.Int(KeyDocuments, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
