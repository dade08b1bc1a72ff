package scram

import "strconv"

// buildClientFirst emits "<gs2-header>n=,r=<client_nonce>" (spec §6,
// client-first). It generates the client nonce exactly once (spec §3:
// "created exactly once in state INIT->NONCE_SENT") and retains the bare
// portion verbatim for AuthMessage (spec §3
// client_first_message_bare).
func (c *Client) buildClientFirst() ([]byte, *Error) {
	if c.clientNonce == "" {
		nonce, err := randomNonce()
		if err != nil {
			return nil, err
		}
		c.clientNonce = nonce
	}

	plus := c.mechanism == MechanismSHA256Plus
	c.gs2Flag, c.gs2Header = cbindFlagAndHeader(plus, c.cfg.ChannelBinding, c.cfg.SSLInUse)

	c.clientFirstMessageBare = "n=,r=" + c.clientNonce

	out := make([]byte, 0, len(c.gs2Header)+len(c.clientFirstMessageBare))
	out = append(out, c.gs2Header...)
	out = append(out, c.clientFirstMessageBare...)
	return out, nil
}

// readServerFirst parses "r=<nonce>,s=<salt>,i=<iterations>" (spec §6,
// §4.6 edge cases) and derives SaltedPassword/ClientKey/StoredKey/
// ServerKey from the password and the server's salt/iteration count.
func (c *Client) readServerFirst(input []byte) *Error {
	c.serverFirstMessage = string(input)

	cur := newCursor(input)

	nonce, err := cur.readAttr('r')
	if err != nil {
		return err
	}
	serverNonce := string(nonce)
	if len(serverNonce) < len(c.clientNonce) || serverNonce[:len(c.clientNonce)] != c.clientNonce {
		return errorf(KindNonceMismatch, "invalid SCRAM response (nonce mismatch)")
	}
	c.serverNonce = serverNonce

	encodedSalt, err := cur.readAttr('s')
	if err != nil {
		return err
	}
	salt, decErr := b64Decode(string(encodedSalt))
	if decErr != nil || len(salt) == 0 {
		return errorf(KindInvalidSalt, "malformed SCRAM message (invalid salt)")
	}
	c.salt = salt

	itersStr, err := cur.readAttr('i')
	if err != nil {
		return err
	}
	iterations, convErr := strconv.Atoi(string(itersStr))
	if convErr != nil || iterations < 1 {
		return errorf(KindInvalidIterations, "malformed SCRAM message (invalid iteration count)")
	}
	c.iterations = iterations

	if !cur.atEnd() {
		return errorf(KindMalformed, "malformed SCRAM message (garbage at end of server-first-message)")
	}

	c.ks = deriveKeySchedule(c.cred, c.salt, c.iterations)
	return nil
}

// buildClientFinal emits "c=<b64 cbind>,r=<server_nonce>,p=<b64 proof>"
// (spec §6, client-final). The channel-binding flag here must match the
// one buildClientFirst already committed to, and client_final_message_
// without_proof is retained verbatim for AuthMessage (spec §3).
func (c *Client) buildClientFinal() ([]byte, *Error) {
	var certHash []byte
	if c.gs2Flag == flagPLUS {
		if c.cfg.CertHasher == nil {
			return nil, errorf(KindChannelBindingUnavailable, "no TLS peer certificate hash available for channel binding")
		}
		hash, err := c.cfg.CertHasher.PeerCertificateHash()
		if err != nil || len(hash) == 0 {
			return nil, errorf(KindChannelBindingUnavailable, "could not obtain TLS peer certificate hash: %v", err)
		}
		certHash = hash
	}
	cbind := cbindInputB64(c.gs2Flag, c.gs2Header, certHash)

	c.clientFinalMessageWithoutProof = "c=" + cbind + ",r=" + c.serverNonce

	authMessage := buildAuthMessage(c.clientFirstMessageBare, c.serverFirstMessage, c.clientFinalMessageWithoutProof)
	proof := c.ks.clientProof(authMessage)
	c.serverSignature = c.ks.computeServerSignature(authMessage)

	out := c.clientFinalMessageWithoutProof + ",p=" + b64Encode(proof)
	return []byte(out), nil
}

// readServerFinal parses either "v=<b64 signature>" or "e=<reason>" (spec
// §6, server-final) and constant-time compares the signature against the
// one computed in buildClientFinal.
//
// The error return distinguishes two very different situations, mirroring
// fe-auth-scram.c's scram_exchange: a non-nil error means the message
// itself could not be parsed or the server reported its own failure, and
// the session never reaches FINISHED. A nil error with match == false
// means the message parsed fine but the signature did not match -- that
// case *does* reach FINISHED (spec §7: "ServerSignatureMismatch is
// reported with status FAILED even though the state reaches FINISHED").
func (c *Client) readServerFinal(input []byte) (match bool, reachedFinished bool, err *Error) {
	if len(input) > 0 && input[0] == 'e' {
		cur := newCursor(input)
		reason, perr := cur.readAttr('e')
		if perr != nil {
			return false, false, perr
		}
		return false, false, errorf(KindServerReportedError, "SCRAM authentication failed: %s", string(reason))
	}

	cur := newCursor(input)
	encoded, perr := cur.readAttr('v')
	if perr != nil {
		return false, false, perr
	}
	signature, decErr := b64Decode(string(encoded))
	if decErr != nil {
		return false, false, errorf(KindMalformed, "malformed SCRAM message (invalid server signature)")
	}
	if len(signature) != keyLength {
		return false, false, errorf(KindInvalidServerSignatureLength, "invalid server signature length")
	}

	return constantTimeEqual(signature, c.serverSignature), true, nil
}
