package sampquery

import (
	"golang.org/x/xerrors"

	"github.com/lanikai/sampquery/internal/packet"
)

// Kind classifies an Error into the closed set of failure modes a caller
// might want to branch on (e.g. to pick an HTTP status code).
type Kind int

const (
	// KindAddrParse: the supplied address string could not be parsed.
	// Produced only by collaborators (CLI, gateway); the core client never
	// parses strings.
	KindAddrParse Kind = iota + 1

	// KindUnsupportedAddress: the peer address is not IPv4.
	KindUnsupportedAddress

	// KindInvalidArgument: an RCON password or command exceeded its wire
	// length limit, or Connect was given a ClientConfig with MaxRetries 0.
	KindInvalidArgument

	// KindBind: binding the local UDP socket failed.
	KindBind

	// KindConnect: associating the socket with the peer address failed.
	KindConnect

	// KindSend: writing a request datagram failed.
	KindSend

	// KindReceive: reading a response datagram failed for a reason other
	// than timeout.
	KindReceive

	// KindTimeout: every configured attempt elapsed without a reply.
	KindTimeout

	// KindInvalidResponse: the response failed header validation, a ping
	// nonce mismatch, or another structural check.
	KindInvalidResponse

	// KindShortRead: a decoder ran out of bytes before finishing its
	// structure.
	KindShortRead

	// KindInvalidUTF8: a length-prefixed string was not valid UTF-8.
	KindInvalidUTF8

	// KindRconAuthFailed: the RCON response payload was empty.
	KindRconAuthFailed
)

func (k Kind) String() string {
	switch k {
	case KindAddrParse:
		return "AddrParse"
	case KindUnsupportedAddress:
		return "UnsupportedAddress"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindBind:
		return "Bind"
	case KindConnect:
		return "Connect"
	case KindSend:
		return "Send"
	case KindReceive:
		return "Receive"
	case KindTimeout:
		return "Timeout"
	case KindInvalidResponse:
		return "InvalidResponse"
	case KindShortRead:
		return "ShortRead"
	case KindInvalidUTF8:
		return "InvalidUTF8"
	case KindRconAuthFailed:
		return "RconAuthFailed"
	default:
		return "Unknown"
	}
}

// Error is the single error type returned by Connect and by every query
// method in this package (Close returns the socket's own error). Its Kind is observable so that a caller such as
// the HTTP gateway can map it to a status code without string matching.
type Error struct {
	Kind   Kind
	Reason string
	Err    error // underlying cause, if any; may be nil
}

func (e *Error) Error() string {
	if e.Reason != "" {
		if e.Err != nil {
			return e.Kind.String() + ": " + e.Reason + ": " + e.Err.Error()
		}
		return e.Kind.String() + ": " + e.Reason
	}
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError constructs an Error, routing any cause through xerrors.Errorf so
// the wrapped error carries frame information and still unwraps to cause
// via errors.Is/errors.As.
func newError(kind Kind, reason string, cause error) *Error {
	if cause != nil {
		if reason != "" {
			cause = xerrors.Errorf("%s: %w", reason, cause)
		} else {
			cause = xerrors.Errorf("%w", cause)
		}
	}
	return &Error{Kind: kind, Reason: reason, Err: cause}
}

// Sentinel errors for the zero-argument kinds, so callers can write
// `errors.Is(err, sampquery.ErrTimeout)` without reaching for Kind.
var (
	ErrTimeout        = newError(KindTimeout, "", nil)
	ErrRconAuthFailed = newError(KindRconAuthFailed, "", nil)
)

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && t.Reason == ""
}

// translatePacketError maps the mechanical errors returned by internal/packet
// into the public, closed error-kind taxonomy described in spec §7. Any
// error type it doesn't recognize is wrapped as KindInvalidResponse, since
// by construction every packet-layer error indicates a malformed datagram.
func translatePacketError(err error) *Error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *packet.ErrUnsupportedAddress:
		return newError(KindUnsupportedAddress, "", err)
	case *packet.ErrHeaderTooShort:
		return newError(KindInvalidResponse, "response too short", err)
	case *packet.ErrBadSignature:
		return newError(KindInvalidResponse, "bad signature", err)
	case *packet.ErrShortRead:
		return newError(KindShortRead, "", err)
	case *packet.ErrStringTooLong:
		return newError(KindInvalidResponse, "length exceeds max packet size", err)
	case *packet.ErrInvalidUTF8:
		return newError(KindInvalidUTF8, "", err)
	default:
		return newError(KindInvalidResponse, "", err)
	}
}
