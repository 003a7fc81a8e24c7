package httpclient

import "golang.org/x/xerrors"

// ErrorKind is a non-exhaustive, structured error classification: consumers
// downcast via Kind() rather than string-matching error messages, the same
// discipline the gateway package's Error holds itself to.
type ErrorKind int

const (
	// KindRequest: the request could not be built or sent at the transport
	// level.
	KindRequest ErrorKind = iota
	// KindStatus: the server responded with a status of 400 or above other
	// than 429; it is returned without retrying.
	KindStatus
	// KindRatelimited: every attempt, the first and each retry, was
	// answered with 429.
	KindRatelimited
	// KindDecoding: the response body could not be decoded into the
	// caller's target type.
	KindDecoding
	// KindValidation: a request parameter (currently only the audit-log
	// reason header) failed local validation before any request was sent.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindStatus:
		return "status"
	case KindRatelimited:
		return "ratelimited"
	case KindDecoding:
		return "decoding"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the client's structured error type, wrapping a cause via xerrors
// so errors.As/errors.Is work against the underlying transport or decoding
// error.
type Error struct {
	kind       ErrorKind
	statusCode int
	cause      error
}

func newError(kind ErrorKind, cause error) *Error {
	return &Error{kind: kind, cause: cause}
}

func newStatusError(statusCode int, cause error) *Error {
	return &Error{kind: KindStatus, statusCode: statusCode, cause: cause}
}

// Kind returns the structured classification of this error.
func (e *Error) Kind() ErrorKind { return e.kind }

// StatusCode returns the HTTP status that caused a KindStatus error, or 0
// for any other kind.
func (e *Error) StatusCode() int { return e.statusCode }

func (e *Error) Error() string {
	if e.statusCode != 0 {
		return xerrors.Errorf("httpclient %s: status %d: %w", e.kind, e.statusCode, e.cause).Error()
	}

	if e.cause != nil {
		return xerrors.Errorf("httpclient %s: %w", e.kind, e.cause).Error()
	}

	return "httpclient " + e.kind.String()
}

func (e *Error) Unwrap() error { return e.cause }
