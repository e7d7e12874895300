package errors

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler is the global error handler.
	// It defaults to LogHandler with verbose=false.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex

	warnings = warningLog{last: make(map[warningKey]time.Time)}
)

// WarningWindow is how long a repeated warning is held back. Warnings with
// the same Op, Kind and Component inside the window are dropped and counted.
const WarningWindow = time.Second

// maxWarningKeys bounds the repeat table; it is cleared when full.
const maxWarningKeys = 256

// Severity ranks a reported error.
type Severity int

const (
	// SeverityError is a failure the caller sees or that stops work.
	SeverityError Severity = iota
	// SeverityWarning is a recoverable problem; work carries on.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Severity returns how serious errors of kind k are. Interval overruns and
// unknown-object removals are warnings: the tick still runs and the removal
// is ignored.
func (k ErrorKind) Severity() Severity {
	switch k {
	case KindInterval, KindUnknownObject:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// WarningHandler is implemented by handlers that treat warnings apart from
// errors. Handlers without it receive warnings through HandleError.
type WarningHandler interface {
	HandleWarning(err *FrameworkError)
}

type warningKey struct {
	op        string
	kind      ErrorKind
	component string
}

type warningLog struct {
	mu         sync.Mutex
	last       map[warningKey]time.Time
	suppressed int
}

// admit reports whether err should be delivered, recording it if so.
func (w *warningLog) admit(err *FrameworkError) bool {
	key := warningKey{op: err.Op, kind: err.Kind, component: err.Component}
	w.mu.Lock()
	defer w.mu.Unlock()
	if last, ok := w.last[key]; ok && err.Timestamp.Sub(last) < WarningWindow {
		w.suppressed++
		return false
	}
	if len(w.last) >= maxWarningKeys {
		clear(w.last)
	}
	w.last[key] = err.Timestamp
	return true
}

func (w *warningLog) reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	clear(w.last)
	w.suppressed = 0
}

// SuppressedWarnings returns how many repeated warnings were dropped since
// the handler was last set.
func SuppressedWarnings() int {
	warnings.mu.Lock()
	defer warnings.mu.Unlock()
	return warnings.suppressed
}

// SetHandler configures the global error handler and forgets recent
// warnings. Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) {
	warnings.reset()
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
}

func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
//
// Warnings (see ErrorKind.Severity) go to HandleWarning when the handler
// has one, and repeats inside WarningWindow are dropped.
func Report(err *FrameworkError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	h := getHandler()
	if h == nil {
		return
	}
	if err.Kind.Severity() == SeverityWarning {
		if !warnings.admit(err) {
			return
		}
		if wh, ok := h.(WarningHandler); ok {
			wh.HandleWarning(err)
			return
		}
	}
	h.HandleError(err)
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// Recover is a helper for deferred panic recovery.
// Usage: defer errors.Recover("operation.name")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// CaptureStack returns the current call stack as a string.
// It skips the first few frames to exclude the CaptureStack call itself.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}
