package gateway

import (
	"github.com/relaywire/relay-go/model"
	"golang.org/x/xerrors"
)

// ErrorKind is a non-exhaustive, structured error classification: consumers
// downcast via Kind() rather than string-matching error messages.
type ErrorKind int

const (
	// KindEstablishing: the initial network/TLS dial failed.
	KindEstablishing ErrorKind = iota
	// KindSending: a frame could not be written to the transport.
	KindSending
	// KindSerializing: a command could not be encoded to JSON.
	KindSerializing
	// KindFatallyClosed: the socket closed with an unrecoverable close
	// code.
	KindFatallyClosed
	// KindReconnect: the drive loop could not re-establish the
	// connection.
	KindReconnect
	// KindProcess: processing an inbound frame failed.
	KindProcess
	// KindSendingMessage: delivering a decoded message downstream failed.
	KindSendingMessage
	// KindDeserializing: an inbound frame failed to decode.
	KindDeserializing
	// KindCompression: the zlib fragment stream could not be
	// decompressed.
	KindCompression
	// KindParsingPayload: a dispatch payload's inner `d` failed to decode
	// into its concrete event type.
	KindParsingPayload
)

func (k ErrorKind) String() string {
	switch k {
	case KindEstablishing:
		return "establishing"
	case KindSending:
		return "sending"
	case KindSerializing:
		return "serializing"
	case KindFatallyClosed:
		return "fatally_closed"
	case KindReconnect:
		return "reconnect"
	case KindProcess:
		return "process"
	case KindSendingMessage:
		return "sending_message"
	case KindDeserializing:
		return "deserializing"
	case KindCompression:
		return "compression"
	case KindParsingPayload:
		return "parsing_payload"
	default:
		return "unknown"
	}
}

// Error is the shard's structured error type. It wraps its cause, when it
// has one, so errors.As/errors.Is work against the underlying transport
// error; KindFatallyClosed errors carry a close code instead of a cause.
type Error struct {
	kind      ErrorKind
	closeCode *model.CloseCode
	cause     error
}

func newError(kind ErrorKind, cause error) *Error {
	return &Error{kind: kind, cause: cause}
}

func newFatalError(code model.CloseCode) *Error {
	return &Error{kind: KindFatallyClosed, closeCode: &code}
}

// Kind returns the structured classification of this error.
func (e *Error) Kind() ErrorKind { return e.kind }

// CloseCode returns the close code that caused a KindFatallyClosed error,
// or nil for any other kind.
func (e *Error) CloseCode() *model.CloseCode { return e.closeCode }

func (e *Error) Error() string {
	if e.closeCode != nil {
		return xerrors.Errorf("shard %s: close code %d", e.kind, *e.closeCode).Error()
	}

	if e.cause != nil {
		return xerrors.Errorf("shard %s: %w", e.kind, e.cause).Error()
	}

	return "shard " + e.kind.String()
}

func (e *Error) Unwrap() error { return e.cause }

// IsFatal reports whether the drive loop must stop retrying after this
// error.
func (e *Error) IsFatal() bool { return e.kind == KindFatallyClosed }
