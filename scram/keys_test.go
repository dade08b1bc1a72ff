package scram

import (
	"bytes"
	"testing"
)

// TestKeyScheduleInvariants checks the algebraic identities spec §8
// requires of every session that reaches FINISHED with a matching
// signature: ClientSignature XOR ClientProof == ClientKey;
// SHA-256(ClientKey) == StoredKey; HMAC(ServerKey, AuthMessage) ==
// ServerSignature.
func TestKeyScheduleInvariants(t *testing.T) {
	salt := []byte("somesalt12345678")
	iterations := 4096
	cred := credential{password: []byte("pencil")}

	ks := deriveKeySchedule(cred, salt, iterations)
	authMessage := []byte("n=,r=abc,r=abc,s=xyz,i=4096,c=biws,r=abc")

	clientSignature := hmacSHA256(ks.storedKey, authMessage)
	proof := ks.clientProof(authMessage)

	clientKeyFromProof := xorBytes(proof, clientSignature)
	if !bytes.Equal(clientKeyFromProof, ks.clientKey) {
		t.Fatalf("ClientSignature XOR ClientProof != ClientKey")
	}

	storedKey := sha256Sum(ks.clientKey)
	if !bytes.Equal(storedKey[:], ks.storedKey) {
		t.Fatalf("SHA-256(ClientKey) != StoredKey")
	}

	serverSignature := ks.computeServerSignature(authMessage)
	wantServerSignature := hmacSHA256(ks.serverKey, authMessage)
	if !bytes.Equal(serverSignature, wantServerSignature) {
		t.Fatalf("HMAC(ServerKey, AuthMessage) != ServerSignature")
	}
}

func TestDeriveKeyScheduleSkipsPBKDF2WithPrecomputedKeys(t *testing.T) {
	clientKey := bytes.Repeat([]byte{0x11}, keyLength)
	serverKey := bytes.Repeat([]byte{0x22}, keyLength)
	cred := credential{clientKey: clientKey, serverKey: serverKey}

	ks := deriveKeySchedule(cred, nil, 0)
	if !bytes.Equal(ks.clientKey, clientKey) {
		t.Fatalf("ClientKey not passed through when pre-computed")
	}
	if !bytes.Equal(ks.serverKey, serverKey) {
		t.Fatalf("ServerKey not passed through when pre-computed")
	}
	if ks.saltedPassword != nil {
		t.Fatalf("SaltedPassword should not be derived when both keys are pre-computed")
	}
	want := sha256Sum(clientKey)
	if !bytes.Equal(ks.storedKey, want[:]) {
		t.Fatalf("StoredKey should still be derived as SHA-256(ClientKey)")
	}
}

func TestBuildAuthMessage(t *testing.T) {
	got := buildAuthMessage("n=,r=a", "r=a,s=b,i=1", "c=biws,r=a")
	want := "n=,r=a,r=a,s=b,i=1,c=biws,r=a"
	if string(got) != want {
		t.Fatalf("AuthMessage = %q, want %q", got, want)
	}
}

func TestXorBytes(t *testing.T) {
	a := []byte{0x0f, 0xf0, 0xaa}
	b := []byte{0x01, 0x02, 0x03}
	got := xorBytes(a, b)
	want := []byte{0x0e, 0xf2, 0xa9}
	if !bytes.Equal(got, want) {
		t.Fatalf("xorBytes = %x, want %x", got, want)
	}
	// xor is its own inverse
	if !bytes.Equal(xorBytes(got, b), a) {
		t.Fatalf("xorBytes not self-inverse")
	}
}
