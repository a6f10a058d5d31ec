package cmd

import (
	"github.com/go-logr/logr"

	"github.com/go-drift/preview/pkg/errors"
)

// logHandler reports engine errors through the CLI logger instead of the
// default zap handler, so they interleave with -v output on stderr.
type logHandler struct {
	log logr.Logger
}

func (h *logHandler) HandleError(err *errors.PreviewError) {
	h.log.Error(err.Err, "engine error", "op", err.Op, "kind", err.Kind.String(), "item", err.Item)
}

func (h *logHandler) HandlePanic(err *errors.PanicError) {
	h.log.Error(err, "engine panic", "op", err.Op)
	h.log.V(1).Info("panic stack", "stack", err.StackTrace)
}
