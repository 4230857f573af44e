package retrolcd

import (
	"errors"
	"fmt"
)

// Kind classifies why a conversion failed.
type Kind int

// The kinds of conversion failure.
const (
	KindInvalidMode Kind = iota + 1
	KindInvalidParameter
	KindDecodeFailure
	KindEmptyInput
)

func (k Kind) String() string {
	switch k {
	case KindInvalidMode:
		return "invalid mode"
	case KindInvalidParameter:
		return "invalid parameter"
	case KindDecodeFailure:
		return "decode failure"
	case KindEmptyInput:
		return "empty input"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by every failing conversion. Stage names the pipeline
// stage that was running when the failure happened.
type Error struct {
	Kind  Kind
	Stage string
	Err   error
}

// Sentinels for use with errors.Is.
var (
	ErrInvalidMode      = &Error{Kind: KindInvalidMode}
	ErrInvalidParameter = &Error{Kind: KindInvalidParameter}
	ErrDecodeFailure    = &Error{Kind: KindDecodeFailure}
	ErrEmptyInput       = &Error{Kind: KindEmptyInput}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stage != "" {
		return "retrolcd: " + e.Stage + ": " + msg
	}
	return "retrolcd: " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == nil && t.Stage == ""
}

// KindOf returns the kind of a conversion error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func invalidMode(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidMode, Err: fmt.Errorf(format, args...)}
}

func invalidParameter(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidParameter, Err: fmt.Errorf(format, args...)}
}

func decodeFailure(err error) error {
	return &Error{Kind: KindDecodeFailure, Err: err}
}

func emptyInput(format string, args ...interface{}) error {
	return &Error{Kind: KindEmptyInput, Err: fmt.Errorf(format, args...)}
}

// withStage stamps the running stage onto err, wrapping foreign errors as
// invalid parameters.
func withStage(err error, stage string) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Stage != "" {
			return e
		}
		return &Error{Kind: e.Kind, Stage: stage, Err: e.Err}
	}
	return &Error{Kind: KindInvalidParameter, Stage: stage, Err: err}
}
