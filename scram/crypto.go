package scram

// The crypto primitives facade (spec §4.1). It wraps exactly the stdlib
// pieces the teacher's own scram.go reaches for, plus golang.org/x/crypto's
// PBKDF2, and nothing else: hashing, HMAC, key derivation, random nonces,
// base64, and a constant-time comparison. No global state.

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

// keyLength is the SCRAM-SHA-256 digest size (spec §3: hash_type = SHA-256,
// key_length = 32).
const keyLength = sha256.Size

// rawNonceLen is the number of raw CSPRNG bytes making up the client nonce
// before base64 encoding (spec §6: "18 raw CSPRNG bytes").
const rawNonceLen = 18

func sha256Sum(b []byte) [keyLength]byte {
	return sha256.Sum256(b)
}

func hmacSHA256(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// deriveKey implements PBKDF2-HMAC-SHA-256 per RFC 2898 (spec §4.4 step 1).
func deriveKey(password, salt []byte, iterations int) []byte {
	return pbkdf2.Key(password, salt, iterations, keyLength, sha256.New)
}

// randomNonce returns the base64 encoding of rawNonceLen cryptographically
// strong random bytes (spec §6).
func randomNonce() (string, *Error) {
	raw := make([]byte, rawNonceLen)
	if _, err := rand.Read(raw); err != nil {
		return "", errorf(KindCryptoBackendFailure, "could not generate nonce: %v", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func b64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func b64Decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// constantTimeEqual reports whether a and b are equal, in time independent
// of their contents, guarding against signature-forgery timing side
// channels (spec §9).
func constantTimeEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// xorBytes returns a XOR b, both of which must have equal length (the
// ClientProof computation of spec §4.4 step 7).
func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// zero overwrites b with zero bytes in place. Every holder of key material
// (SaltedPassword, ClientKey, StoredKey, ServerKey, the raw password) must
// call this on drop and on error paths (spec §9).
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
