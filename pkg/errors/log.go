package errors

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogHandler is an ErrorHandler that writes structured entries through zap.
type LogHandler struct {
	// Logger receives the entries. When nil, a production logger writing
	// to stderr is created on first use.
	Logger *zap.Logger
	// Verbose attaches stack traces to every entry.
	Verbose bool

	once sync.Once
}

func (h *LogHandler) logger() *zap.Logger {
	h.once.Do(func() {
		if h.Logger != nil {
			return
		}
		cfg := zap.NewProductionConfig()
		cfg.Sampling = nil
		cfg.DisableStacktrace = true
		logger, err := cfg.Build()
		if err != nil {
			logger = zap.NewNop()
		}
		h.Logger = logger.Named("preview")
	})
	return h.Logger
}

// HandleError logs a PreviewError.
func (h *LogHandler) HandleError(err *PreviewError) {
	if err == nil {
		return
	}
	fields := []zapcore.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
		zap.Time("at", err.Timestamp),
	}
	if err.Item != "" {
		fields = append(fields, zap.String("item", err.Item))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error(errMessage(err.Err), fields...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zapcore.Field{
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("recovered panic", fields...)
}

func errMessage(err error) string {
	if err == nil {
		return "error"
	}
	return err.Error()
}
