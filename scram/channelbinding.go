package scram

// The channel-binding negotiator (spec §4.5). Decides the GS2 flag sent in
// client-first and the cbind-input bytes sent (base64-encoded) in
// client-final. The flag computed here must be identical across both
// messages; Client stores it when it builds client-first precisely so
// that building client-final can't recompute it differently.

// BindingPolicy mirrors the "channel_binding" connection parameter read by
// the teacher (conn.channel_binding[0], inspected for its first byte only:
// spec §6).
type BindingPolicy int

const (
	// BindingDisable never attempts channel binding, even over TLS.
	BindingDisable BindingPolicy = iota
	// BindingPrefer signals "y" over TLS when the mechanism is not -PLUS,
	// so the server can detect downgrade attacks. This package does not
	// pick the mechanism: -PLUS is used only when the caller passes
	// MechanismSHA256Plus to NewClient.
	BindingPrefer
	// BindingRequire behaves like BindingPrefer for the purposes of this
	// client (failing closed when TLS or -PLUS is unavailable is a
	// decision made by the caller before ever constructing a Client).
	BindingRequire
)

// gs2Flag is the single-byte channel-binding flag of the GS2 header.
type gs2Flag byte

const (
	flagPLUS gs2Flag = 'p' // channel binding is active
	flagY    gs2Flag = 'y' // client supports it, server didn't offer -PLUS
	flagN    gs2Flag = 'n' // no channel binding
)

// cbindFlagAndHeader decides the GS2 flag per spec §4.5's table and
// returns it along with the bare "<flag>,," header (empty authzid).
func cbindFlagAndHeader(plus bool, policy BindingPolicy, sslInUse bool) (gs2Flag, string) {
	switch {
	case plus:
		return flagPLUS, "p=tls-server-end-point,,"
	case policy != BindingDisable && sslInUse:
		return flagY, "y,,"
	default:
		return flagN, "n,,"
	}
}

// cbindInputB64 returns the base64 "c=" value for client-final. For the
// non-PLUS flags the encodings are the fixed constants from spec §4.5
// ("c=biws" = base64("n,,"), "c=eSws" = base64("y,,")); for -PLUS it is the
// base64 of the GS2 header concatenated with the TLS peer certificate's
// endpoint hash.
func cbindInputB64(flag gs2Flag, header string, certHash []byte) string {
	switch flag {
	case flagN:
		return "biws"
	case flagY:
		return "eSws"
	case flagPLUS:
		input := make([]byte, 0, len(header)+len(certHash))
		input = append(input, header...)
		input = append(input, certHash...)
		return b64Encode(input)
	default:
		return "biws"
	}
}
