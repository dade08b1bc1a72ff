// Package scram implements the client side of SCRAM-SHA-256 (RFC 5802)
// and SCRAM-SHA-256-PLUS (RFC 5802 + RFC 5929 channel binding) for
// database clients authenticating over the SASL framing protocol
// (RFC 7677), as used by PostgreSQL's "scram-sha-256" auth method.
//
// A Client is driven by repeatedly handing it server bytes and taking
// client bytes out via Step, mirroring the four-function-pointer SASL
// mechanism object contract PostgreSQL registers internally
// (init/exchange/channel_bound/free).
package scram

// Mechanism names accepted by Init.
const (
	MechanismSHA256     = "SCRAM-SHA-256"
	MechanismSHA256Plus = "SCRAM-SHA-256-PLUS"
)

// Status is the result of a Step call.
type Status int

const (
	// StatusContinue indicates the exchange is not finished; Step's
	// output must be sent to the server and its reply passed to the
	// next Step call.
	StatusContinue Status = iota
	// StatusComplete indicates authentication succeeded: the server's
	// signature matched.
	StatusComplete
	// StatusFailed indicates the session is done and failed. No further
	// Step calls are valid.
	StatusFailed
)

type state int

const (
	stateInit state = iota
	stateNonceSent
	stateProofSent
	stateFinished
	stateDead // terminal failure state; not part of spec's four states,
	// but needed so a second Step after failure can report
	// KindInvalidState instead of re-running already-failed logic.
)

// CertHasher is the TLS collaborator this package needs for channel
// binding: the RFC 5929 "tls-server-end-point" hash of the server's
// certificate. It is out of scope for this package per spec §1; callers
// wire an implementation backed by their TLS library.
type CertHasher interface {
	// PeerCertificateHash returns the channel-binding hash of the
	// current TLS peer certificate.
	PeerCertificateHash() ([]byte, error)
}

// Config carries the connection-level settings the core reads, per
// spec §6 "Config keys the core reads from the connection".
type Config struct {
	// ChannelBinding is the connection's channel-binding policy.
	ChannelBinding BindingPolicy
	// SSLInUse reports whether the underlying connection is over TLS.
	SSLInUse bool
	// CertHasher supplies the TLS peer-certificate hash for -PLUS.
	// Required (and must succeed) when Mechanism is MechanismSHA256Plus.
	CertHasher CertHasher
	// ClientKey, if non-nil, is a pre-computed 32-byte ClientKey,
	// skipping PBKDF2 derivation from a password.
	ClientKey []byte
	// ServerKey, if non-nil, is a pre-computed 32-byte ServerKey.
	ServerKey []byte
}

// Client is a SCRAM-SHA-256 client authentication session. The zero value
// is not usable; construct one with NewClient. A Client is not safe for
// concurrent use by multiple goroutines; distinct Clients are fully
// independent (spec §5).
type Client struct {
	mechanism string
	cfg       Config
	cred      credential

	state state

	clientNonce            string
	gs2Flag                gs2Flag
	gs2Header              string
	clientFirstMessageBare string

	serverFirstMessage string
	serverNonce        string
	salt               []byte
	iterations         int

	clientFinalMessageWithoutProof string

	ks *keySchedule

	serverSignature []byte
	channelBound    bool
}

// NewClient creates a session for the given mechanism and password. The
// password is SASLprepped; on any non-OOM SASLprep failure the original
// bytes are used instead (spec §4.2, §9).
func NewClient(mechanism string, password string, cfg Config) (*Client, *Error) {
	if mechanism != MechanismSHA256 && mechanism != MechanismSHA256Plus {
		return nil, errorf(KindInvalidState, "unsupported SCRAM mechanism %q", mechanism)
	}
	if mechanism == MechanismSHA256Plus && !cfg.SSLInUse {
		return nil, errorf(KindChannelBindingUnavailable, "SCRAM-SHA-256-PLUS requires an active TLS connection")
	}
	if (cfg.ClientKey == nil) != (cfg.ServerKey == nil) {
		// A lone override has nowhere to get the other key from: ClientKey
		// and ServerKey both derive from SaltedPassword (spec §4.4), so a
		// partial override without a password is unsatisfiable. The
		// Credential tagged variant of spec §9 is Password | ClientKey |
		// ServerKey | Both -- this package only implements the Password
		// and Both cases, since a lone ClientKey/ServerKey override with
		// no password to fall back on for the other key has no caller in
		// the wild (it would leave the session unable to either prove
		// itself or verify the server).
		return nil, errorf(KindInvalidState, "ClientKey and ServerKey overrides must be supplied together")
	}

	c := &Client{
		mechanism: mechanism,
		cfg:       cfg,
		state:     stateInit,
	}
	if cfg.ClientKey != nil {
		c.cred = credential{clientKey: cfg.ClientKey, serverKey: cfg.ServerKey}
	} else {
		c.cred = credential{password: []byte(saslprep(password))}
	}
	return c, nil
}

// SetNonce overrides the client nonce that would otherwise be generated
// from the CSPRNG on the first Step call. It exists for deterministic
// testing against fixed protocol vectors (spec §8's "determinism modulo
// CSPRNG" property) and must be called before the first Step call.
func (c *Client) SetNonce(nonce []byte) {
	c.clientNonce = string(nonce)
}

// ChannelBound reports whether channel binding was employed and the
// exchange completed successfully. Both conditions are required (spec
// §4.6's Data Model "channel_bound" field, and fe-auth-scram.c's
// scram_channel_bound, which checks FE_SCRAM_FINISHED *and*
// SCRAM_SHA_256_PLUS_NAME -- neither alone is sufficient).
func (c *Client) ChannelBound() bool {
	return c.state == stateFinished && c.channelBound
}

// Free zeroizes all key material held by the session. It must be called
// on every exit path (spec §3 Lifecycle, §5 Cancellation/timeout, §9).
// Free may be called more than once.
func (c *Client) Free() {
	if c.cred.password != nil {
		zero(c.cred.password)
		c.cred.password = nil
	}
	if c.ks != nil {
		c.ks.zero()
		c.ks = nil
	}
	zero(c.serverSignature)
	c.state = stateDead
}

// Step advances the state machine. input is the server's previous message
// (ignored, and may be empty, on the very first call); final indicates
// this is expected to be the server-final message. It returns the status
// and, when status is StatusContinue, the client bytes to send next.
//
// Input-length validation (spec §4.6): after the first call, input must
// be non-empty; embedded-NUL checks are the caller's responsibility when
// it owns the wire framing (this package receives input as a Go byte slice
// that has already been decoded from the frame, so "declared length ==
// strlen" is enforced by rejecting any embedded NUL byte here).
func (c *Client) Step(final bool, input []byte) (Status, []byte, *Error) {
	if c.state != stateInit {
		if len(input) == 0 {
			c.state = stateDead
			return StatusFailed, nil, errorf(KindMalformed, "malformed SCRAM message (empty message)")
		}
		for _, b := range input {
			if b == 0 {
				c.state = stateDead
				return StatusFailed, nil, errorf(KindMalformed, "malformed SCRAM message (embedded NUL)")
			}
		}
	}

	switch c.state {
	case stateInit:
		out, err := c.buildClientFirst()
		if err != nil {
			c.state = stateDead
			return StatusFailed, nil, err
		}
		c.state = stateNonceSent
		return StatusContinue, out, nil

	case stateNonceSent:
		if err := c.readServerFirst(input); err != nil {
			c.state = stateDead
			return StatusFailed, nil, err
		}
		out, err := c.buildClientFinal()
		if err != nil {
			c.state = stateDead
			return StatusFailed, nil, err
		}
		c.state = stateProofSent
		return StatusContinue, out, nil

	case stateProofSent:
		match, reachedFinished, err := c.readServerFinal(input)
		if err != nil {
			c.state = stateDead
			return StatusFailed, nil, err
		}
		if reachedFinished {
			c.state = stateFinished
		}
		if !match {
			return StatusFailed, nil, errorf(KindServerSignatureMismatch, "incorrect server signature")
		}
		c.channelBound = c.mechanism == MechanismSHA256Plus
		return StatusComplete, nil, nil

	default:
		return StatusFailed, nil, errorf(KindInvalidState, "invalid SCRAM exchange state")
	}
}
