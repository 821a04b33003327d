package gups

import "fmt"

// Table is the shared update target: a power-of-two number of 64-bit words,
// indexed with state & (len-1).
type Table []uint64

// NewTable allocates a table of the given word count. The count must be a
// power of two; allocation failure is fatal for the run, so the panic from
// a failed make is intentionally not recovered here.
func NewTable(words uint64) (Table, error) {
	if words == 0 || words&(words-1) != 0 {
		return nil, fmt.Errorf("table size %d is not a power of two", words)
	}
	t := make(Table, words)
	t.Reset()
	return t, nil
}

// Reset restores the canonical initial content Table[i] = i.
func (t Table) Reset() {
	for i := range t {
		t[i] = uint64(i)
	}
}

// LogSize returns log2 of the table word count.
func (t Table) LogSize() uint {
	logSize := uint(0)
	for words := uint64(len(t)); words > 1; words >>= 1 {
		logSize++
	}
	return logSize
}

// NUpdate returns the total number of updates for a table of the given word
// count, the customary 4x the number of entries.
func NUpdate(words uint64) uint64 {
	return 4 * words
}

// SizeForMemory returns the largest power-of-two word count whose table fits
// in half of the given memory budget in bytes.
func SizeForMemory(budget uint64) (logSize uint, words uint64) {
	target := budget / 2 / 8
	if target == 0 {
		return 0, 1
	}
	words = 1
	for words<<1 <= target && words<<1 != 0 {
		words <<= 1
		logSize++
	}
	return logSize, words
}
