package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every reported error and panic. It starts as a
	// LogHandler writing to stderr.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler replaces the global handler. Nil restores a fresh LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

func handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Errorf reports a PreviewError built from a format string and returns it.
func Errorf(op string, kind ErrorKind, format string, args ...any) *PreviewError {
	err := &PreviewError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
	Report(err)
	return err
}

// Report stamps err if needed and hands it to the global handler.
func Report(err *PreviewError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := handler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic hands a recovered panic to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if h := handler(); h != nil {
		h.HandlePanic(err)
	}
}

// Recover swallows a panic in the calling function and reports it under op.
// It must be deferred directly:
//
//	defer errors.Recover("preview.HandlePointer")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is Recover followed by callback(r) for hosts that need
// to reset state after a panic.
func RecoverWithCallback(op string, callback func(r any)) {
	r := recover()
	if r == nil {
		return
	}
	reportRecovered(op, r)
	if callback != nil {
		callback(r)
	}
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

var recoverFrames = map[string]bool{
	"github.com/go-drift/preview/pkg/errors.CaptureStack":        true,
	"github.com/go-drift/preview/pkg/errors.reportRecovered":     true,
	"github.com/go-drift/preview/pkg/errors.Recover":             true,
	"github.com/go-drift/preview/pkg/errors.RecoverWithCallback": true,
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line" entry
// per frame. Frames inside the runtime's panic machinery are left out so a
// recovered panic's trace starts at the panicking function.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		f, more := frames.Next()
		if f.Function != "" && !strings.HasPrefix(f.Function, "runtime.") && !recoverFrames[f.Function] {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}
