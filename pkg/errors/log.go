package errors

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Out overrides the destination. Nil means os.Stderr.
	Out io.Writer

	mu sync.Mutex
}

func (h *LogHandler) writer() io.Writer {
	if h.Out != nil {
		return h.Out
	}
	return os.Stderr
}

// HandleError logs a FrameworkError.
func (h *LogHandler) HandleError(err *FrameworkError) {
	if err == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	w := h.writer()

	if h.Verbose {
		fmt.Fprintf(w, "[pocketdash %s] %s", err.Kind, err.Op)
		if err.Component != "" {
			fmt.Fprintf(w, " component=%s", err.Component)
		}
		fmt.Fprintf(w, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "[pocketdash %s] %s: %v\n", err.Kind, err.Op, err.Err)
	}
}

// HandleWarning logs a warning on one line. Stack traces are left out even
// in verbose mode.
func (h *LogHandler) HandleWarning(err *FrameworkError) {
	if err == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	w := h.writer()

	if err.Component != "" {
		fmt.Fprintf(w, "[pocketdash warning %s] %s component=%s: %v\n", err.Kind, err.Op, err.Component, err.Err)
	} else {
		fmt.Fprintf(w, "[pocketdash warning %s] %s: %v\n", err.Kind, err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	w := h.writer()

	if err.Op != "" {
		fmt.Fprintf(w, "[pocketdash panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "[pocketdash panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
