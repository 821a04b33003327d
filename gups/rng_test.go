package gups

import "testing"

// stepN applies the step function n times from seed 1, the brute-force
// reference for JumpAhead.
func stepN(n int64) uint64 {
	s := uint64(0x1)
	for i := int64(0); i < n; i++ {
		s = Step(s)
	}
	return s
}

func TestStepKnownValues(t *testing.T) {
	allOnes := ^uint64(0)
	cases := []struct {
		in, want uint64
	}{
		{0x1, 0x2},
		{0x2, 0x4},
		{1 << 62, 1 << 63},
		{1 << 63, Poly},
		{allOnes, allOnes<<1 ^ Poly},
	}
	for _, c := range cases {
		if got := Step(c.in); got != c.want {
			t.Errorf("Step(%#x) = %#x, want %#x", c.in, got, c.want)
		}
	}
}

func TestJumpAheadZero(t *testing.T) {
	if got := JumpAhead(0); got != 0x1 {
		t.Fatalf("JumpAhead(0) = %#x, want 0x1", got)
	}
}

func TestJumpAheadMatchesSequential(t *testing.T) {
	s := uint64(0x1)
	for n := int64(0); n <= 1000; n++ {
		if got := JumpAhead(n); got != s {
			t.Fatalf("JumpAhead(%d) = %#x, want %#x", n, got, s)
		}
		s = Step(s)
	}
}

func TestJumpAheadPeriodWrap(t *testing.T) {
	cases := []struct {
		name string
		a, b int64
	}{
		{"negative", -1, Period - 1},
		{"full period", Period, 0},
		{"period plus offset", Period + 5, 5},
		{"negative full wrap", -Period + 7, 7},
		{"double period", 2*Period + 3, 3},
	}
	for _, c := range cases {
		if got, want := JumpAhead(c.a), JumpAhead(c.b); got != want {
			t.Errorf("%s: JumpAhead(%d) = %#x, JumpAhead(%d) = %#x",
				c.name, c.a, got, c.b, want)
		}
	}
}

func TestLaneSeedsMatchSequential(t *testing.T) {
	// TableSize 1024 gives NUPDATE 4096 and 32 rounds of 128 lanes.
	const rounds = 32

	s := uint64(0x1)
	steps := int64(0)
	for j := 0; j < MaxLanes; j++ {
		want := int64(rounds) * int64(j)
		for steps < want {
			s = Step(s)
			steps++
		}
		if got := JumpAhead(want); got != s {
			t.Fatalf("lane %d: JumpAhead(%d) = %#x, want %#x", j, want, got, s)
		}
	}
}

func BenchmarkStep(b *testing.B) {
	s := uint64(0x1)
	for n := 0; n < b.N; n++ {
		s = Step(s)
	}
	sink = s
}

func BenchmarkJumpAhead(b *testing.B) {
	var s uint64
	for n := 0; n < b.N; n++ {
		s += JumpAhead(int64(n) << 32)
	}
	sink = s
}

var sink uint64
