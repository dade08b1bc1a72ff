package scram

// The key schedule (spec §4.4). Given a password, salt and iteration
// count (or pre-computed client/server keys), derives the HMAC chain used
// to build ClientProof and verify ServerSignature.

// credential is the tagged variant of spec §9's "Pre-computed client/server
// key overrides": Password(bytes) | ClientKey(32) | ServerKey(32) |
// Both(32,32). Exactly one of password, clientKey, serverKey (or both
// clientKey and serverKey) is populated.
type credential struct {
	password  []byte // nil if clientKey is supplied instead
	clientKey []byte // 32 bytes, or nil to derive from password
	serverKey []byte // 32 bytes, or nil to derive from password
}

// keySchedule holds the key material derived for one session. Every field
// here is zeroized by its zero method.
type keySchedule struct {
	saltedPassword []byte // 32 bytes; empty if both keys were pre-computed
	clientKey      []byte // 32 bytes
	storedKey      []byte // 32 bytes
	serverKey      []byte // 32 bytes
}

// deriveKeySchedule implements spec §4.4 steps 1-4: SaltedPassword,
// ClientKey, StoredKey, ServerKey. If the caller supplied a pre-computed
// ClientKey, steps 1-2 are skipped; likewise for a pre-computed ServerKey.
func deriveKeySchedule(cred credential, salt []byte, iterations int) *keySchedule {
	ks := &keySchedule{}

	var saltedPassword []byte
	needSalted := cred.clientKey == nil || cred.serverKey == nil
	if needSalted {
		if cred.password != nil {
			saltedPassword = deriveKey(cred.password, salt, iterations)
		} else {
			saltedPassword = deriveKey(nil, salt, iterations)
		}
		ks.saltedPassword = saltedPassword
	}

	if cred.clientKey != nil {
		ks.clientKey = append([]byte(nil), cred.clientKey...)
	} else {
		ks.clientKey = hmacSHA256(saltedPassword, []byte("Client Key"))
	}
	storedKey := sha256Sum(ks.clientKey)
	ks.storedKey = storedKey[:]

	if cred.serverKey != nil {
		ks.serverKey = append([]byte(nil), cred.serverKey...)
	} else {
		ks.serverKey = hmacSHA256(saltedPassword, []byte("Server Key"))
	}

	return ks
}

// buildAuthMessage constructs AuthMessage := client-first-message-bare +
// "," + server-first-message + "," + client-final-message-without-proof
// (spec §4.4 step 5 / Glossary).
func buildAuthMessage(clientFirstBare, serverFirst, clientFinalWithoutProof string) []byte {
	am := make([]byte, 0, len(clientFirstBare)+len(serverFirst)+len(clientFinalWithoutProof)+2)
	am = append(am, clientFirstBare...)
	am = append(am, ',')
	am = append(am, serverFirst...)
	am = append(am, ',')
	am = append(am, clientFinalWithoutProof...)
	return am
}

// clientProof computes ClientProof := ClientKey XOR HMAC(StoredKey,
// AuthMessage) (spec §4.4 steps 6-7).
func (ks *keySchedule) clientProof(authMessage []byte) []byte {
	clientSignature := hmacSHA256(ks.storedKey, authMessage)
	return xorBytes(ks.clientKey, clientSignature)
}

// computeServerSignature computes HMAC(ServerKey, AuthMessage) (spec §4.4 step 8).
func (ks *keySchedule) computeServerSignature(authMessage []byte) []byte {
	return hmacSHA256(ks.serverKey, authMessage)
}

func (ks *keySchedule) zero() {
	zero(ks.saltedPassword)
	zero(ks.clientKey)
	zero(ks.storedKey)
	zero(ks.serverKey)
}
