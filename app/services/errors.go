package services

import "errors"

// Kind classifies a service failure. Controllers map kinds to HTTP
// statuses; nothing downstream inspects message text.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindUpdateFailed
	KindInternal
)

// Error is the failure type every service method returns. Asset I/O
// failures never become an Error: they are logged and absorbed where
// they happen, so a missing file cannot block a document mutation.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func UpdateFailed(message string) *Error {
	return &Error{Kind: KindUpdateFailed, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Err: err}
}

// KindOf extracts the kind from any error, defaulting to KindInternal
// for errors that did not originate in a service.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
