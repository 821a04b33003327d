package gups

import "math/bits"

// The address stream is the classic LFSR-style recurrence
//
//	s' = (s << 1) ^ (POLY if bit 63 of s is set else 0)
//
// over 64-bit unsigned words. Poly is the feedback polynomial and Period
// is the cycle length of the sequence started from seed 1.
const (
	Poly   uint64 = 0x7
	Period int64  = 1317624576693539401
)

// Step advances the recurrence by one application of the step function.
// The bit-63 test is done on the unsigned value, never via signed shifts.
func Step(s uint64) uint64 {
	return s<<1 ^ (Poly & -(s >> 63))
}

// JumpAhead returns the recurrence state reached after n steps from seed 1,
// in O(log n) matrix applications instead of n sequential steps.
//
// m2[j] holds the state after 2j steps, which makes "XOR the rows selected
// by the accumulator's bits" the GF(2) squaring map on the sequence; the
// main loop is then square-and-multiply over the bits of n.
func JumpAhead(n int64) uint64 {
	for n < 0 {
		n += Period
	}
	for n >= Period {
		n -= Period
	}
	if n == 0 {
		return 0x1
	}

	var m2 [64]uint64
	temp := uint64(0x1)
	for i := 0; i < 64; i++ {
		m2[i] = temp
		temp = Step(Step(temp))
	}

	ran := uint64(0x2)
	for i := bits.Len64(uint64(n)) - 1; i > 0; {
		var t uint64
		for j := 0; j < 64; j++ {
			if (ran>>uint(j))&1 == 1 {
				t ^= m2[j]
			}
		}
		ran = t
		i--
		if (n>>uint(i))&1 == 1 {
			ran = Step(ran)
		}
	}

	return ran
}
