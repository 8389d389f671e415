package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// SlogAPI implements API on top of log/slog, a nil Logger means slog.Default().
type SlogAPI struct {
	Logger *slog.Logger
}

func (s SlogAPI) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func keyValuePairs(params []any) bool {
	if len(params)%2 != 0 {
		return false
	}
	for i := 0; i < len(params); i += 2 {
		if _, ok := params[i].(string); !ok {
			return false
		}
	}
	return true
}

// attrs turns report params into slog attributes: errors go under "err",
// what remains is used as key/value pairs when it looks like them and as
// params.<n> otherwise.
func attrs(params []any) []any {
	var out []any
	var rest []any
	for _, p := range params {
		if err, ok := p.(error); ok {
			out = append(out, "err", err.Error())
			continue
		}
		rest = append(rest, p)
	}

	if keyValuePairs(rest) {
		return append(out, rest...)
	}
	for i, p := range rest {
		out = append(out, fmt.Sprintf("params.%d", i), p)
	}
	return out
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	s.logger().Error("broken component", append([]any{"id", id}, attrs(params)...)...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	s.logger().Warn("warning", append([]any{"id", id}, attrs(params)...)...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	s.logger().Debug(message, attrs(params)...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	s.logger().Info("count", "id", id, "n", count)
}

// InitSlog installs a tint console handler as the default slog logger.
func InitSlog(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.DateTime,
	}))
	slog.SetDefault(logger)
}
