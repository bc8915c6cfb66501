package logging

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewSlog returns a slog logger backed by the zap JSON core, so every
// component logging through slog shares the same sink and trace fields.
func NewSlog(level Level) *slog.Logger {
	return slog.New(NewSlogHandler(NewJSON(level)))
}

// NewSlogHandler adapts a Logger into a slog.Handler.
func NewSlogHandler(logger *Logger) slog.Handler {
	if logger == nil {
		logger = Default()
	}

	return &slogHandler{core: logger.Zap().Core()}
}

type slogHandler struct {
	core   zapcore.Core
	fields []zapcore.Field
	prefix string
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.core.Enabled(zapLevel(level))
}

func (h *slogHandler) Handle(ctx context.Context, record slog.Record) error {
	entry := zapcore.Entry{
		Level:   zapLevel(record.Level),
		Time:    record.Time,
		Message: record.Message,
	}

	checked := h.core.Check(entry, nil)
	if checked == nil {
		return nil
	}

	fields := make([]zapcore.Field, 0, len(h.fields)+record.NumAttrs()+2)
	fields = append(fields, h.fields...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, h.attrToField(attr))
		return true
	})
	fields = append(fields, traceFields(ctx)...)

	checked.Write(fields...)

	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	fields := make([]zapcore.Field, 0, len(h.fields)+len(attrs))
	fields = append(fields, h.fields...)
	for _, attr := range attrs {
		fields = append(fields, h.attrToField(attr))
	}

	return &slogHandler{core: h.core, fields: fields, prefix: h.prefix}
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &slogHandler{core: h.core, fields: h.fields, prefix: h.prefix + name + "."}
}

func (h *slogHandler) attrToField(attr slog.Attr) zapcore.Field {
	key := h.prefix + attr.Key
	if attr.Value.Kind() == slog.KindGroup {
		return zap.Any(key, attr.Value.Any())
	}

	return zap.Any(key, attr.Value.Resolve().Any())
}

func zapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
