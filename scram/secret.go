package scram

import (
	"crypto/rand"
	"fmt"
)

// saltLength is the number of CSPRNG bytes used for a freshly built secret
// (spec §4.7: "Salt is 16 CSPRNG bytes").
const saltLength = 16

// BuildSecret derives a server-style stored SCRAM secret from a cleartext
// password, for storage server-side (spec §4.7, §3 "Secret record").
// The password is SASLprepped first; on a non-OOM SASLprep failure the
// original bytes are used (same leniency as NewClient).
//
// The returned string has the form
// "SCRAM-SHA-256$<iterations>:<b64 salt>$<b64 StoredKey>:<b64 ServerKey>".
func BuildSecret(password string, iterations int) (string, *Error) {
	if iterations < 1 {
		return "", errorf(KindInvalidIterations, "iterations must be >= 1, got %d", iterations)
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errorf(KindCryptoBackendFailure, "could not generate salt: %v", err)
	}

	prepared := []byte(saslprep(password))
	defer zero(prepared)

	ks := deriveKeySchedule(credential{password: prepared}, salt, iterations)
	defer ks.zero()

	return fmt.Sprintf("SCRAM-SHA-256$%d:%s$%s:%s",
		iterations, b64Encode(salt), b64Encode(ks.storedKey), b64Encode(ks.serverKey)), nil
}
