// Package errors provides structured error types for vibechat.
// These errors carry the operation that failed and a Kind that decides
// how the process reacts (which exit code, which message).
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindRange
	KindPermission
	KindIO
	KindConfig
	KindTheme
	KindTerminal
	KindWindowTooSmall
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindRange:
		return "out of range"
	case KindPermission:
		return "permission denied"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindTheme:
		return "theme error"
	case KindTerminal:
		return "terminal error"
	case KindWindowTooSmall:
		return "window too small"
	default:
		return "unknown error"
	}
}

// Exit codes, one per fatal cause.
const (
	ExitGeneric        = 1
	ExitConfig         = 2
	ExitPermission     = 3
	ExitTheme          = 4
	ExitTerminal       = 5
	ExitWindowTooSmall = 6
)

// Error is the structured error type for vibechat.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode maps an error to the process exit status. A nil error is 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetKind(err) {
	case KindConfig, KindInvalid:
		return ExitConfig
	case KindPermission:
		return ExitPermission
	case KindTheme:
		return ExitTheme
	case KindTerminal:
		return ExitTerminal
	case KindWindowTooSmall:
		return ExitWindowTooSmall
	default:
		return ExitGeneric
	}
}

// Contract errors

func OutOfRange(op Op, what string, value, min, max int) error {
	return E(op, KindRange, fmt.Sprintf("%s %d outside [%d, %d]", what, value, min, max))
}

func InvalidArgument(op Op, reason string) error {
	return E(op, KindInvalid, reason)
}

// Theme errors

func ThemeMissingKey(path string) error {
	return E(Op("theme.Validate"), KindTheme, fmt.Sprintf("missing required key %q", path))
}

func ThemeInvalidValue(path, reason string) error {
	return E(Op("theme.Validate"), KindTheme, fmt.Sprintf("invalid value at %q: %s", path, reason))
}

func ThemeLoadFailed(path string, err error) error {
	return E(Op("theme.Load"), KindTheme, fmt.Sprintf("failed to load theme from %s", path), err)
}

func ThemeUnknownKey(key string) error {
	return E(Op("theme.Lookup"), KindNotFound, fmt.Sprintf("theme has no component %q", key))
}

// Config errors

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindConfig, reason)
}

// State directory errors

func WorkDirNotWritable(dir string, err error) error {
	return E(Op("state.CheckWritable"), KindPermission, fmt.Sprintf("cannot write to %s", dir), err)
}

// Terminal errors

func TerminalUnsupported(reason string) error {
	return E(Op("terminal.Check"), KindTerminal, reason)
}

func WindowTooSmall(width, height, minWidth, minHeight int) error {
	return E(Op("app.Resize"), KindWindowTooSmall,
		fmt.Sprintf("window too small: %dx%d, need at least %dx%d", width, height, minWidth, minHeight))
}

// Feed errors

func FeedLoadFailed(path string, err error) error {
	return E(Op("feed.Load"), KindIO, fmt.Sprintf("failed to load content from %s", path), err)
}
