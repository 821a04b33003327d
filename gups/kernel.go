package gups

import "sync/atomic"

// MaxLanes is the width of the interleaved kernel: 128 independent
// recurrence states advanced round-robin so that consecutive table accesses
// carry no data dependency on each other.
const MaxLanes = 128

// Rounds between progress counter updates; keeps the atomic add out of the
// hot loop without letting the monitor goroutine go stale.
const progressRounds = 4096

// Lanes returns the lane count used for nupdate total updates. Tables small
// enough that NUPDATE < 128 clamp the lane count to NUPDATE so the kernel
// still performs every update (one round of NUPDATE lanes).
func Lanes(nupdate uint64) int {
	if nupdate < MaxLanes {
		return int(nupdate)
	}
	return MaxLanes
}

// Update performs NUpdate(len(t)) read-modify-write XOR updates against t,
// interleaved across the lane set. Lane j starts at the recurrence state
// rounds*j steps into the sequence, so the lanes jointly walk the same
// logical sequence a single-lane kernel would.
//
// done, when non-nil, is advanced atomically as updates complete so a
// monitor goroutine can report progress. Returns the updates performed.
func Update(t Table, done *uint64) uint64 {
	nupdate := NUpdate(uint64(len(t)))
	lanes := Lanes(nupdate)
	rounds := nupdate / uint64(lanes)
	mask := uint64(len(t)) - 1

	var ran [MaxLanes]uint64
	for j := 0; j < lanes; j++ {
		ran[j] = JumpAhead(int64(rounds) * int64(j))
	}

	for i := uint64(0); i < rounds; i++ {
		for j := 0; j < lanes; j++ {
			s := ran[j]<<1 ^ (Poly & -(ran[j] >> 63))
			ran[j] = s
			t[s&mask] ^= s
		}
		if done != nil && (i+1)%progressRounds == 0 {
			atomic.AddUint64(done, progressRounds*uint64(lanes))
		}
	}
	if done != nil {
		atomic.AddUint64(done, (rounds%progressRounds)*uint64(lanes))
	}

	return rounds * uint64(lanes)
}

// Verify replays the same NUpdate(len(t)) updates in canonical single-lane
// order. XOR updates are self-inverse, so after Update followed by Verify a
// race-free table is back to Table[i] = i; the return value counts the slots
// that are not.
func Verify(t Table) uint64 {
	nupdate := NUpdate(uint64(len(t)))
	mask := uint64(len(t)) - 1

	ran := uint64(0x1)
	for i := uint64(0); i < nupdate; i++ {
		ran = Step(ran)
		t[ran&mask] ^= ran
	}

	var errors uint64
	for i := range t {
		if t[i] != uint64(i) {
			errors++
		}
	}
	return errors
}

// Tolerable reports whether an error count from Verify is within the 1%
// threshold that absorbs collision effects of reordered or concurrent
// update streams.
func Tolerable(errors, words uint64) bool {
	return float64(errors) <= 0.01*float64(words)
}
