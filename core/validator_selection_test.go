package core

import (
	"math/big"
	"testing"
)

func registryOfFive(t *testing.T) *NodeRegistry {
	t.Helper()
	r := NewNodeRegistry(nil)
	for _, id := range []string{"n1", "n2", "n3", "n4", "n5"} {
		if err := r.Register(id, "pub-"+id, big.NewInt(1000), 10); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func TestSelectionPercentTiers(t *testing.T) {
	cases := []struct {
		loadPct uint64
		wantL1  uint64
		wantL2  uint64
	}{
		{0, 25, 20},
		{29, 25, 20},
		{30, 20, 15},
		{59, 20, 15},
		{60, 15, 12},
		{84, 15, 12},
		{85, 10, 10},
		{100, 10, 10},
	}
	for _, c := range cases {
		if got := SelectionPercentL1(c.loadPct); got != c.wantL1 {
			t.Errorf("SelectionPercentL1(%d) = %d, want %d", c.loadPct, got, c.wantL1)
		}
		if got := SelectionPercentL2(c.loadPct); got != c.wantL2 {
			t.Errorf("SelectionPercentL2(%d) = %d, want %d", c.loadPct, got, c.wantL2)
		}
	}
}

func TestSelectCount(t *testing.T) {
	if got := SelectCount(5, 25); got != 1 {
		t.Errorf("SelectCount(5,25) = %d, want 1", got)
	}
	if got := SelectCount(0, 25); got != 0 {
		t.Errorf("SelectCount(0,25) = %d, want 0", got)
	}
	if got := SelectCount(5, 1000); got != 5 {
		t.Errorf("SelectCount should cap at eligible count, got %d", got)
	}
}

func TestSelectValidatorsDeterministic(t *testing.T) {
	r := registryOfFive(t)
	a, err := SelectValidatorsL1(r, 10, 100, 1, []byte("entropy"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := SelectValidatorsL1(r, 10, 100, 1, []byte("entropy"))
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != 1 {
		t.Fatalf("expected 1 selected validator, got %d", len(a))
	}
	if len(a) != len(b) || a[0] != b[0] {
		t.Errorf("selection not deterministic: %v != %v", a, b)
	}
}

func TestSelectValidatorsL2DisjointFromL1(t *testing.T) {
	r := registryOfFive(t)
	l1, err := SelectValidatorsL1(r, 50, 100, 1, []byte("entropy"))
	if err != nil {
		t.Fatal(err)
	}
	excluded := make(map[string]struct{}, len(l1))
	for _, id := range l1 {
		excluded[id] = struct{}{}
	}
	l2, err := SelectValidatorsL2(r, 50, 100, 1, []byte("entropy"), excluded)
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range l2 {
		if _, ok := excluded[id]; ok {
			t.Errorf("L2 pool contains excluded L1 node %s", id)
		}
	}
}

func TestLoadPercentZeroCapacity(t *testing.T) {
	if _, err := LoadPercent(10, 0); err != ErrZeroCapacity {
		t.Errorf("expected ErrZeroCapacity, got %v", err)
	}
}
