// Package errors provides annotated errors that carry slog attributes and the
// source location where they were created. It re-exports the stdlib helpers so
// callers only need one errors import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// AnnotatedError wraps an error with a message, slog attributes, and the
// source location of the call site that created it.
type AnnotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

// New creates an annotated error from a message.
func New(msg string) error {
	return &AnnotatedError{
		msg:    msg,
		err:    nil,
		attrs:  nil,
		source: callerSource(2), //nolint:mnd // skip runtime.Callers and New.
	}
}

// NewSentinel creates an error meant for package-level sentinel declarations.
func NewSentinel(msg string) error {
	return &AnnotatedError{
		msg:    msg,
		err:    nil,
		attrs:  nil,
		source: callerSource(2), //nolint:mnd // skip runtime.Callers and NewSentinel.
	}
}

// Wrap annotates err with a message and optional slog attributes. The wrapped
// error participates in errors.Is/As/Unwrap chains.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &AnnotatedError{
		msg:    msg,
		err:    err,
		attrs:  attrs,
		source: callerSource(2), //nolint:mnd // skip runtime.Callers and Wrap.
	}
}

// DecoratePanic converts a recovered panic value into an annotated error
// pointing at the panic site.
func DecoratePanic(recovered any) error {
	if recovered == nil {
		return nil
	}
	return &AnnotatedError{
		msg:    fmt.Sprintf("panic: %v", recovered),
		err:    nil,
		attrs:  nil,
		source: panicSource(),
	}
}

func (e *AnnotatedError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Unwrap supports the stdlib errors.Unwrap chain.
func (e *AnnotatedError) Unwrap() error {
	return e.err
}

// callerSource resolves "file.go:line" skipping the given number of frames.
func callerSource(skip int) string {
	pcs := make([]uintptr, 1)
	if runtime.Callers(skip+1, pcs) == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames(pcs).Next()
	return shortSource(frame)
}

// panicSource walks up the stack past the runtime panic machinery to find the
// frame that panicked.
func panicSource() string {
	const maxDepth = 32
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(2, pcs) //nolint:mnd // skip runtime.Callers and panicSource.
	frames := runtime.CallersFrames(pcs[:n])
	seenPanic := false
	fallback := ""
	for {
		frame, more := frames.Next()
		isRuntime := strings.HasPrefix(frame.Function, "runtime.")
		// The first non-runtime frame after runtime.gopanic is the panic site.
		if seenPanic && !isRuntime {
			return shortSource(frame)
		}
		if isRuntime && strings.Contains(frame.Function, "gopanic") {
			seenPanic = true
		}
		if fallback == "" && !isRuntime && !strings.HasSuffix(frame.File, "annotatederror.go") {
			fallback = shortSource(frame)
		}
		if !more {
			break
		}
	}
	return fallback
}

func shortSource(frame runtime.Frame) string {
	file := frame.File
	if idx := strings.LastIndexByte(file, '/'); idx != -1 {
		file = file[idx+1:]
	}
	return fmt.Sprintf("%s:%d", file, frame.Line)
}

// SlogError converts an error into a structured slog attribute with the error
// message, the source of the deepest annotated error, and all annotations
// collected along the unwrap chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	var (
		annotations []slog.Attr
		source      string
	)
	collectAnnotations(err, &annotations, &source)

	attrs := []any{slog.String("message", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		groupArgs := make([]any, 0, len(annotations))
		for _, attr := range annotations {
			groupArgs = append(groupArgs, attr)
		}
		attrs = append(attrs, slog.Group("annotations", groupArgs...))
	}
	return slog.Group("error", attrs...)
}

// collectAnnotations walks the error chain depth-first, gathering attributes
// and remembering the deepest annotated error's source location.
func collectAnnotations(err error, annotations *[]slog.Attr, source *string) {
	if err == nil {
		return
	}

	var annotated *AnnotatedError
	if errors.As(err, &annotated) {
		*annotations = append(*annotations, annotated.attrs...)
		if annotated.source != "" {
			*source = annotated.source
		}
		collectAnnotations(annotated.err, annotations, source)
		return
	}

	// Handle errors.Join and fmt.Errorf with multiple %w verbs.
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			collectAnnotations(inner, annotations, source)
		}
		return
	}

	collectAnnotations(errors.Unwrap(err), annotations, source)
}

// Re-exported stdlib helpers.

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join wraps the given errors into a single error.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
