// Package skipsupport implements the totally-ordered comparator and
// successor/predecessor ("skip") operations PostgreSQL's btree access
// method exposes per indexed key type, grounded on
// src/backend/access/nbtree/nbtcompare.c.
//
// Each Comparator in this package provides Compare (a three-way, total
// order over the entire value domain, consistent with the boolean =, <,
// > operators of the type), Increment/Decrement (the immediate
// successor/predecessor, used by range-skip index scans), and Low/High
// (the domain minimum/maximum). OIDVector is the exception: it provides
// Compare only.
package skipsupport

import "math"

// Ordering is the result of Compare: negative if a < b, zero if a == b,
// positive if a > b. Any negative/positive value is legal -- callers must
// not assume -1/+1, since some platforms' memcmp already returns the
// extremes (nbtcompare.c's STRESS_SORT_INT_MIN note).
type Ordering int

// Bool is the total order over {false, true}, matching btboolcmp /
// btboolskipsupport: false < true, represented as 0/1.
type Bool struct{}

func (Bool) Compare(a, b bool) Ordering {
	return Ordering(b2i(a) - b2i(b))
}

// Increment returns the immediate successor of x, or ok == false if x is
// already the maximum (true), mirroring bool_increment's "return value is
// undefined" overflow signal.
func (Bool) Increment(x bool) (next bool, ok bool) {
	if x {
		return false, false
	}
	return true, true
}

// Decrement returns the immediate predecessor of x, or ok == false if x is
// already the minimum (false).
func (Bool) Decrement(x bool) (prev bool, ok bool) {
	if !x {
		return false, false
	}
	return false, true
}

func (Bool) Low() bool  { return false }
func (Bool) High() bool { return true }

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Int16 is the total order over int16, matching btint2cmp. Upstream
// nbtcompare.c does not register a dedicated btint2skipsupport routine
// (int2 range-skip scans piggyback on the int4 machinery via
// btint24cmp/btint42cmp), but spec.md's ordered-key entry set names i16
// as a first-class kind, so Increment/Decrement are supplied here
// following the same pattern as int4/int8.
type Int16 struct{}

func (Int16) Compare(a, b int16) Ordering {
	return Ordering(int32(a) - int32(b))
}

func (Int16) Increment(x int16) (next int16, ok bool) {
	if x == math.MaxInt16 {
		return 0, false
	}
	return x + 1, true
}

func (Int16) Decrement(x int16) (prev int16, ok bool) {
	if x == math.MinInt16 {
		return 0, false
	}
	return x - 1, true
}

func (Int16) Low() int16  { return math.MinInt16 }
func (Int16) High() int16 { return math.MaxInt16 }

// Int32 is the total order over int32, matching btint4cmp/btint4skipsupport.
type Int32 struct{}

func (Int32) Compare(a, b int32) Ordering {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func (Int32) Increment(x int32) (next int32, ok bool) {
	if x == math.MaxInt32 {
		return 0, false
	}
	return x + 1, true
}

func (Int32) Decrement(x int32) (prev int32, ok bool) {
	if x == math.MinInt32 {
		return 0, false
	}
	return x - 1, true
}

func (Int32) Low() int32  { return math.MinInt32 }
func (Int32) High() int32 { return math.MaxInt32 }

// Int64 is the total order over int64, matching btint8cmp/btint8skipsupport.
type Int64 struct{}

func (Int64) Compare(a, b int64) Ordering {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func (Int64) Increment(x int64) (next int64, ok bool) {
	if x == math.MaxInt64 {
		return 0, false
	}
	return x + 1, true
}

func (Int64) Decrement(x int64) (prev int64, ok bool) {
	if x == math.MinInt64 {
		return 0, false
	}
	return x - 1, true
}

func (Int64) Low() int64  { return math.MinInt64 }
func (Int64) High() int64 { return math.MaxInt64 }

// Char is the total order over a single byte compared as unsigned,
// matching btcharcmp/btcharskipsupport's explicit "compare chars as
// unsigned" note.
type Char struct{}

func (Char) Compare(a, b uint8) Ordering {
	return Ordering(int32(a) - int32(b))
}

func (Char) Increment(x uint8) (next uint8, ok bool) {
	if x == math.MaxUint8 {
		return 0, false
	}
	return x + 1, true
}

func (Char) Decrement(x uint8) (prev uint8, ok bool) {
	if x == 0 {
		return 0, false
	}
	return x - 1, true
}

func (Char) Low() uint8  { return 0 }
func (Char) High() uint8 { return math.MaxUint8 }

// OID is the total order over PostgreSQL's unsigned 32-bit object
// identifiers, matching btoidcmp/btoidskipsupport. InvalidOid (0) is the
// domain minimum, not a negative bound, since OIDs are unsigned.
type OID struct{}

const invalidOID uint32 = 0

func (OID) Compare(a, b uint32) Ordering {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func (OID) Increment(x uint32) (next uint32, ok bool) {
	if x == math.MaxUint32 {
		return 0, false
	}
	return x + 1, true
}

func (OID) Decrement(x uint32) (prev uint32, ok bool) {
	if x == invalidOID {
		return 0, false
	}
	return x - 1, true
}

func (OID) Low() uint32  { return invalidOID }
func (OID) High() uint32 { return math.MaxUint32 }

// OIDVector is the total order over a variable-length slice of OIDs,
// matching btoidvectorcmp: primary by length, then lexicographic by
// element. Unlike the fixed-width kinds above, oidvector has no known
// minimum/maximum (spec §4.8), so it exposes no Low/High or
// Increment/Decrement.
type OIDVector struct{}

func (OIDVector) Compare(a, b []uint32) Ordering {
	if len(a) != len(b) {
		return Ordering(len(a) - len(b))
	}
	for i := range a {
		switch {
		case a[i] > b[i]:
			return 1
		case a[i] < b[i]:
			return -1
		}
	}
	return 0
}

// CompareCross compares a signed value of one of {16, 32, 64}-bit width
// against one of another width, widening both to int64 before comparing,
// exactly as nbtcompare.c's btint24cmp/btint42cmp/btint28cmp/btint82cmp/
// btint48cmp/btint84cmp family does (spec §4.8: "For cross-width integer
// comparisons... widen to the larger signed type before comparing").
func CompareCross(a, b int64) Ordering {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
