package errors

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testHandler struct {
	onError func(*PreviewError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *PreviewError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func withHandler(t *testing.T, h ErrorHandler) {
	t.Helper()
	old := DefaultHandler
	SetHandler(h)
	t.Cleanup(func() { SetHandler(old) })
}

func TestPreviewErrorString(t *testing.T) {
	err := &PreviewError{
		Op:   "preview.ImageFailed",
		Kind: KindLoad,
		Item: "https://example.com/a.jpg",
		Err:  stderrors.New("decode failed"),
	}
	got := err.Error()
	want := "preview.ImageFailed [load] item=https://example.com/a.jpg: decode failed"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	noItem := &PreviewError{Op: "config.Load", Kind: KindConfig, Err: stderrors.New("bad")}
	if got := noItem.Error(); got != "config.Load [config]: bad" {
		t.Errorf("Error() = %q", got)
	}
}

func TestPreviewErrorUnwrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := &PreviewError{Op: "x", Err: sentinel}
	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindInput, "input"},
		{KindLoad, "load"},
		{KindLifecycle, "lifecycle"},
		{KindConfig, "config"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	if got := err.Error(); got != "panic: boom" {
		t.Errorf("PanicError.Error() = %q", got)
	}
	err.Op = "preview.HandlePointer"
	if got := err.Error(); got != "panic in preview.HandlePointer: boom" {
		t.Errorf("PanicError.Error() = %q", got)
	}
}

func TestReportSetsTimestamp(t *testing.T) {
	var captured *PreviewError
	withHandler(t, &testHandler{onError: func(err *PreviewError) { captured = err }})

	Report(&PreviewError{Op: "test.op", Kind: KindInput, Err: stderrors.New("x")})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestErrorfReportsAndReturns(t *testing.T) {
	var captured *PreviewError
	withHandler(t, &testHandler{onError: func(err *PreviewError) { captured = err }})

	err := Errorf("preview.JumpTo", KindInput, "index %d out of range", 9)
	if captured != err {
		t.Fatal("Errorf should report the error it returns")
	}
	if !strings.Contains(err.Error(), "index 9 out of range") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	withHandler(t, &testHandler{onPanic: func(err *PanicError) { captured = err }})

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v", captured.Value)
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	withHandler(t, &testHandler{})
	var got any
	func() {
		defer RecoverWithCallback("test.cb", func(r any) { got = r })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback got %v, want 42", got)
	}
}

func TestSetHandlerNil(t *testing.T) {
	old := DefaultHandler
	t.Cleanup(func() { SetHandler(old) })

	SetHandler(nil)
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestLogHandlerWritesStructuredEntries(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := &LogHandler{Logger: zap.New(core)}

	h.HandleError(&PreviewError{
		Op:   "preview.ImageFailed",
		Kind: KindLoad,
		Item: "b.jpg",
		Err:  stderrors.New("404"),
	})
	h.HandlePanic(&PanicError{Op: "preview.HandleKey", Value: "boom"})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	first := entries[0].ContextMap()
	if entries[0].Message != "404" || first["op"] != "preview.ImageFailed" || first["item"] != "b.jpg" {
		t.Errorf("unexpected error entry: %q %v", entries[0].Message, first)
	}
	if entries[1].Message != "recovered panic" || entries[1].ContextMap()["op"] != "preview.HandleKey" {
		t.Errorf("unexpected panic entry: %+v", entries[1])
	}
}
