package scram

import "github.com/xdg-go/stringprep"

// saslprep normalizes a cleartext password per the SASLprep profile (RFC
// 4013, spec §4.2). As per RFC 4013 a non-conformant password should be
// rejected, but PostgreSQL's own client authenticates successfully even
// when the password does not fit the profile -- the teacher's scram.go
// documents this with TestSCRAMStrangePasswords, and SPEC_FULL carries the
// same leniency: on any non-OOM failure we proceed with the original
// bytes instead of erroring out.
func saslprep(password string) string {
	prepared, err := stringprep.SASLprep.Prepare(password)
	if err != nil {
		return password
	}
	return prepared
}
