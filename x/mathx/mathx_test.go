package mathx

import "testing"

func TestClamp(t *testing.T) {
	for _, c := range []struct{ v, lo, hi, want uint32 }{
		{5, 16, 0xFFFF, 16},
		{0x1234, 16, 0xFFFF, 0x1234},
		{0x12345, 16, 0xFFFF, 0xFFFF},
		{5, 10, 1, 5}, // swapped bounds
	} {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Fatalf("Clamp(%d,%d,%d) = %d, want %d", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestRoundDiv(t *testing.T) {
	// 150 MHz / 115200 = 1302.08 -> 1302
	if got := RoundDiv(uint32(150_000_000), 115_200); got != 1302 {
		t.Fatalf("RoundDiv = %d, want 1302", got)
	}
	if got := RoundDiv(uint32(7), 2); got != 4 {
		t.Fatalf("RoundDiv(7,2) = %d, want 4", got)
	}
	if got := RoundDiv(uint32(7), 0); got != 0 {
		t.Fatalf("RoundDiv(7,0) = %d, want 0", got)
	}
	if got := CeilDiv(uint64(10), 3); got != 4 {
		t.Fatalf("CeilDiv(10,3) = %d, want 4", got)
	}
}
