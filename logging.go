package anneal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/sony/gobreaker"
)

// Logger is the engine's logging port. The engine depends on this
// interface only; it never imports slog or any concrete sink directly,
// so a caller may plug in whatever observability stack they already
// run.
type Logger interface {
	// Progress emits one periodic line at Info level, with the fixed
	// field set:
	// {ts, level, iter, T, curFitness, bestFitness, reheats, sinceImprovement, msg},
	// plus runID when one is set.
	Progress(runID string, iter int, temperature, curFitness, bestFitness float64, sinceImprovement, reheats int)
	// Debug emits a per-iteration acceptance decision. The engine calls it
	// on every iteration; implementations drop it unless their level is
	// Debug.
	Debug(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
	// Close releases any held resource (e.g. a log file handle). Safe
	// to call multiple times.
	Close() error
}

// NopLogger discards everything; it is used when Logging.Enabled is
// false and the caller supplied no override Logger.
type NopLogger struct{}

func (NopLogger) Progress(string, int, float64, float64, float64, int, int) {}
func (NopLogger) Debug(string, ...any)                                     {}
func (NopLogger) Warn(string, ...any)                                      {}
func (NopLogger) Error(string, ...any)                                     {}
func (NopLogger) Close() error                                             { return nil }

// slogLogger implements Logger on top of log/slog: a console sink
// (colorized via tint), a file sink emitting one JSON object per line
// in the fixed schema documented on Logger.Progress, or both.
type slogLogger struct {
	console *slog.Logger
	file    *slog.Logger
	level   Level
	closer  func() error
}

// newLogger builds the Logger described by cfg. Callers own the
// returned Logger's lifetime and must Close it on every exit path.
func newLogger(cfg LoggingConfig) (Logger, error) {
	if !cfg.Enabled || cfg.Level == LevelNone {
		return NopLogger{}, nil
	}

	var console, file *slog.Logger
	closer := func() error { return nil }

	if cfg.Output == OutputConsole || cfg.Output == OutputBoth {
		console = slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      toSlogLevel(cfg.Level),
			TimeFormat: time.Kitchen,
		}))
	}

	if cfg.Output == OutputFile || cfg.Output == OutputBoth {
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("anneal: opening log file %q: %w", cfg.FilePath, err)
		}
		w := newBreakerWriter(f, console)
		file = slog.New(newSchemaHandler(w, toSlogLevel(cfg.Level)))
		closer = f.Close
	}

	return &slogLogger{console: console, file: file, level: cfg.Level, closer: closer}, nil
}

func (l *slogLogger) Progress(runID string, iter int, temperature, curFitness, bestFitness float64, sinceImprovement, reheats int) {
	attrs := []any{
		"runID", runID,
		"iter", iter,
		"T", temperature,
		"curFitness", curFitness,
		"bestFitness", bestFitness,
		"reheats", reheats,
		"sinceImprovement", sinceImprovement,
	}
	if l.console != nil {
		l.console.Info("progress", attrs...)
	}
	if l.file != nil {
		l.file.Info("progress", attrs...)
	}
}

func (l *slogLogger) Debug(msg string, kv ...any) {
	if l.console != nil {
		l.console.Debug(msg, kv...)
	}
	if l.file != nil {
		l.file.Debug(msg, kv...)
	}
}

func (l *slogLogger) Warn(msg string, kv ...any) {
	if l.console != nil {
		l.console.Warn(msg, kv...)
	}
	if l.file != nil {
		l.file.Warn(msg, kv...)
	}
}

func (l *slogLogger) Error(msg string, kv ...any) {
	if l.console != nil {
		l.console.Error(msg, kv...)
	}
	if l.file != nil {
		l.file.Error(msg, kv...)
	}
}

func (l *slogLogger) Close() error {
	return l.closer()
}

func toSlogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// schemaHandler is a minimal slog.Handler that renders the fixed
// field set above, one JSON object per line, rather than slog's
// default attribute layout. It intentionally does not support
// handler groups (WithGroup) or cross-call attribute accumulation
// (WithAttrs beyond what it's given) since the engine never uses them.
type schemaHandler struct {
	w     io.Writer
	level slog.Level
}

func newSchemaHandler(w io.Writer, level slog.Level) *schemaHandler {
	return &schemaHandler{w: w, level: level}
}

func (h *schemaHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

type schemaLine struct {
	TS               string  `json:"ts"`
	Level            string  `json:"level"`
	RunID            string  `json:"runID,omitempty"`
	Iter             int     `json:"iter"`
	T                float64 `json:"T"`
	CurFitness       float64 `json:"curFitness"`
	BestFitness      float64 `json:"bestFitness"`
	Reheats          int     `json:"reheats"`
	SinceImprovement int     `json:"sinceImprovement"`
	Msg              string  `json:"msg"`
}

func (h *schemaHandler) Handle(_ context.Context, r slog.Record) error {
	line := schemaLine{
		TS:    r.Time.UTC().Format(time.RFC3339Nano),
		Level: r.Level.String(),
		Msg:   r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "runID":
			line.RunID = a.Value.String()
		case "iter":
			line.Iter = int(a.Value.Int64())
		case "T":
			line.T = a.Value.Float64()
		case "curFitness":
			line.CurFitness = a.Value.Float64()
		case "bestFitness":
			line.BestFitness = a.Value.Float64()
		case "reheats":
			line.Reheats = int(a.Value.Int64())
		case "sinceImprovement":
			line.SinceImprovement = int(a.Value.Int64())
		}
		return true
	})
	b, err := json.Marshal(line)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = h.w.Write(b)
	return err
}

func (h *schemaHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *schemaHandler) WithGroup(_ string) slog.Handler      { return h }

// breakerWriter wraps a file handle with a circuit breaker: repeated
// write failures trip the breaker and subsequent writes are silently
// dropped (file output degraded, console keeps working) instead of
// surfacing I/O errors on the annealing hot loop.
type breakerWriter struct {
	w       io.Writer
	breaker *gobreaker.CircuitBreaker
	onTrip  *slog.Logger
	tripped bool
}

func newBreakerWriter(w io.Writer, onTrip *slog.Logger) *breakerWriter {
	bw := &breakerWriter{w: w, onTrip: onTrip}
	bw.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "anneal-log-file",
		MaxRequests: 1,
		Interval:    0,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return bw
}

func (b *breakerWriter) Write(p []byte) (int, error) {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return b.w.Write(p)
	})
	if err != nil {
		if !b.tripped && b.onTrip != nil {
			b.onTrip.Warn("log file sink degraded, dropping file writes", "error", err.Error())
		}
		b.tripped = true
		// Swallow the error: the caller (slog) must not see a write
		// failure turn into a panic or a stalled hot loop.
		return len(p), nil
	}
	b.tripped = false
	return len(p), nil
}
