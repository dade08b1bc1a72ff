package scram

import "fmt"

// Kind classifies the reason a SCRAM exchange failed. Callers that need to
// react differently to different failures (for example, to avoid logging
// ServerReportedError text that came from an untrusted peer) should switch
// on Kind rather than parsing Error.Error().
type Kind int

const (
	// KindOOM indicates an allocation failed.
	KindOOM Kind = iota
	// KindCryptoBackendFailure indicates the hash/HMAC/PBKDF2/RNG backend
	// returned an error it should never return in practice.
	KindCryptoBackendFailure
	// KindMalformed indicates a wire message violated the SCRAM grammar.
	KindMalformed
	// KindNonceMismatch indicates the server's nonce did not begin with
	// the client's nonce.
	KindNonceMismatch
	// KindInvalidSalt indicates the server-first salt was empty or not
	// valid base64.
	KindInvalidSalt
	// KindInvalidIterations indicates the server-first iteration count
	// was not a positive decimal integer.
	KindInvalidIterations
	// KindInvalidServerSignatureLength indicates the decoded server
	// signature was not exactly the hash's output length.
	KindInvalidServerSignatureLength
	// KindServerSignatureMismatch indicates the server signature failed
	// the constant-time comparison.
	KindServerSignatureMismatch
	// KindServerReportedError indicates the server sent an "e=" message
	// instead of "v=".
	KindServerReportedError
	// KindChannelBindingUnavailable indicates -PLUS was requested without
	// an active TLS connection, or no TLS peer certificate hash was
	// available.
	KindChannelBindingUnavailable
	// KindInvalidState indicates exchange was called after the session
	// had already failed or finished, or NewClient was given an
	// unsupported mechanism or only one of the two key overrides.
	KindInvalidState
)

func (k Kind) String() string {
	switch k {
	case KindOOM:
		return "out of memory"
	case KindCryptoBackendFailure:
		return "crypto backend failure"
	case KindMalformed:
		return "malformed SCRAM message"
	case KindNonceMismatch:
		return "nonce mismatch"
	case KindInvalidSalt:
		return "invalid salt"
	case KindInvalidIterations:
		return "invalid iteration count"
	case KindInvalidServerSignatureLength:
		return "invalid server signature length"
	case KindServerSignatureMismatch:
		return "server signature mismatch"
	case KindServerReportedError:
		return "server reported error"
	case KindChannelBindingUnavailable:
		return "channel binding unavailable"
	case KindInvalidState:
		return "invalid SCRAM exchange state"
	default:
		return "unknown SCRAM error"
	}
}

// Error is returned by every exported function in this package that can
// fail. It always terminates the session: there is no partial success to
// recover from, per the state machine's "any failure is terminal" contract.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	if e.msg == "" {
		return e.Kind.String()
	}
	return e.msg
}

func errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}
