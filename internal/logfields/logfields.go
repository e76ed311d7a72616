// Package logfields pins the canonical slog field names so log keys do not
// drift across packages.
package logfields

import "log/slog"

const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyFile       = "file"
	KeyLinkID     = "link_id"
	KeyURL        = "url"
	KeyKind       = "kind"
	KeyDocuments  = "documents"
	KeyRewritten  = "rewritten"
	KeyOutOfDate  = "out_of_date"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func LinkID(id string) slog.Attr      { return slog.String(KeyLinkID, id) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Documents(n int) slog.Attr       { return slog.Int(KeyDocuments, n) }
func Rewritten(n int) slog.Attr       { return slog.Int(KeyRewritten, n) }
func OutOfDate(n int) slog.Attr       { return slog.Int(KeyOutOfDate, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
