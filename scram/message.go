package scram

// The attribute parser (spec §4.3). SCRAM messages are
// attr "=" value ("," attr "=" value)*, where attr is a single ASCII
// letter and value excludes comma and NUL. readAttr mirrors the teacher's
// read_attr_value (fe-auth-scram.c), except that it does not write into
// the buffer: where the C code overwrites the comma with a NUL, readAttr
// returns a slice ending before the comma. The result is the same
// zero-copy contract -- a borrowed view valid only until the caller
// mutates the buffer.

type cursor struct {
	buf []byte
	pos int
}

func newCursor(msg []byte) *cursor {
	return &cursor{buf: msg}
}

// readAttr consumes one "attr=value" prefix (plus its trailing comma, if
// any) from the cursor and returns the value as a byte slice aliasing the
// cursor's backing array. The returned slice is only valid until the next
// call to readAttr or remainder.
func (c *cursor) readAttr(attr byte) ([]byte, *Error) {
	if c.pos >= len(c.buf) || c.buf[c.pos] != attr {
		return nil, errorf(KindMalformed, "malformed SCRAM message (attribute %q expected)", attr)
	}
	c.pos++

	if c.pos >= len(c.buf) || c.buf[c.pos] != '=' {
		return nil, errorf(KindMalformed, "malformed SCRAM message (expected character \"=\" for attribute %q)", attr)
	}
	c.pos++

	start := c.pos
	end := start
	for end < len(c.buf) && c.buf[end] != ',' {
		end++
	}

	value := c.buf[start:end]
	if end < len(c.buf) {
		c.pos = end + 1
	} else {
		c.pos = end
	}
	return value, nil
}

// remainder returns whatever bytes are left unconsumed, used to detect
// garbage at the end of a message.
func (c *cursor) remainder() []byte {
	return c.buf[c.pos:]
}

// atEnd reports whether the cursor has consumed the entire buffer.
func (c *cursor) atEnd() bool {
	return c.pos >= len(c.buf)
}
