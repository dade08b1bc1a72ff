package scram

import "testing"

func TestCbindFlagAndHeader(t *testing.T) {
	cases := []struct {
		name       string
		plus       bool
		policy     BindingPolicy
		sslInUse   bool
		wantFlag   gs2Flag
		wantHeader string
	}{
		{"plus always wins", true, BindingDisable, false, flagPLUS, "p=tls-server-end-point,,"},
		{"prefer over tls advertises y", false, BindingPrefer, true, flagY, "y,,"},
		{"require over tls advertises y", false, BindingRequire, true, flagY, "y,,"},
		{"disable over tls is n", false, BindingDisable, true, flagN, "n,,"},
		{"prefer without tls is n", false, BindingPrefer, false, flagN, "n,,"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			flag, header := cbindFlagAndHeader(c.plus, c.policy, c.sslInUse)
			if flag != c.wantFlag {
				t.Fatalf("flag = %q, want %q", flag, c.wantFlag)
			}
			if header != c.wantHeader {
				t.Fatalf("header = %q, want %q", header, c.wantHeader)
			}
		})
	}
}

func TestCbindInputB64Constants(t *testing.T) {
	if got := cbindInputB64(flagN, "n,,", nil); got != "biws" {
		t.Fatalf("n,, encodes to %q, want \"biws\"", got)
	}
	if got := cbindInputB64(flagY, "y,,", nil); got != "eSws" {
		t.Fatalf("y,, encodes to %q, want \"eSws\"", got)
	}
}

func TestCbindInputB64Plus(t *testing.T) {
	certHash := make([]byte, 32) // the RFC-5929-adapted all-zero vector from spec scenario 2
	got := cbindInputB64(flagPLUS, "p=tls-server-end-point,,", certHash)
	want := b64Encode(append([]byte("p=tls-server-end-point,,"), certHash...))
	if got != want {
		t.Fatalf("cbindInputB64 = %q, want %q", got, want)
	}
}
