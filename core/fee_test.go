package core

import "testing"

func TestFeeFromLoadBuckets(t *testing.T) {
	cases := []struct {
		pending uint64
		want    uint64
	}{
		{0, 1},
		{300, 1},
		{310, 2},
		{600, 2},
		{610, 3},
		{800, 3},
		{810, 5},
		{1000, 5},
	}
	for _, c := range cases {
		if got := FeeFromLoad(c.pending); got != c.want {
			t.Errorf("FeeFromLoad(%d) = %d, want %d", c.pending, got, c.want)
		}
	}
}

func TestFeeFromLoadNeverZero(t *testing.T) {
	for pending := uint64(0); pending <= 2000; pending += 17 {
		if got := FeeFromLoad(pending); got != 1 && got != 2 && got != 3 && got != 5 {
			t.Errorf("FeeFromLoad(%d) = %d, want one of {1,2,3,5}", pending, got)
		}
	}
}
