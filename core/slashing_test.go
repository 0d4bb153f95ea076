package core

import (
	"math/big"
	"testing"
)

func TestApplySlashEquivocationSuspendsAfterRepeated(t *testing.T) {
	r := NewNodeRegistry(nil)
	if err := r.Register("n1", "pub", big.NewInt(10000), 10); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 7; i++ {
		if err := ApplySlash(r, nil, "n1", ReasonEquivocation); err != nil {
			t.Fatalf("ApplySlash iteration %d: %v", i, err)
		}
	}

	n, err := r.Get("n1")
	if err != nil {
		t.Fatal(err)
	}
	if n.Status != StatusSuspended {
		t.Errorf("expected node suspended after 7 equivocation slashes, reputation=%d", n.ReputationScore)
	}
}

func TestApplySlashStakeSaturatesAtZero(t *testing.T) {
	r := NewNodeRegistry(nil)
	if err := r.Register("n1", "pub", big.NewInt(5), 10); err != nil {
		t.Fatal(err)
	}
	if err := ApplySlash(r, nil, "n1", ReasonEquivocation); err != nil {
		t.Fatal(err)
	}
	n, err := r.Get("n1")
	if err != nil {
		t.Fatal(err)
	}
	if n.Stake.Sign() != 0 {
		t.Errorf("expected stake to saturate at 0, got %s", n.Stake.String())
	}
}

func TestApplySlashBatchToleratesMissingNodes(t *testing.T) {
	r := NewNodeRegistry(nil)
	if err := r.Register("n1", "pub", big.NewInt(1000), 10); err != nil {
		t.Fatal(err)
	}
	// Should not panic and should still slash n1 despite "missing" being absent.
	ApplySlashBatch(r, nil, []string{"n1", "missing"}, ReasonNoVote)

	n, err := r.Get("n1")
	if err != nil {
		t.Fatal(err)
	}
	if n.Stake.Cmp(big.NewInt(999)) != 0 {
		t.Errorf("expected n1 stake 999 after NoVote slash, got %s", n.Stake.String())
	}
}

func TestReputationAndStakePenaltyTable(t *testing.T) {
	cases := []struct {
		reason    SlashingReason
		wantRep   uint64
		wantStake int64
	}{
		{ReasonNoVote, ScoreScale * 2 / 100, 1},
		{ReasonAgainstMajority, ScoreScale * 3 / 100, 2},
		{ReasonEquivocation, ScoreScale * 15 / 100, 100},
		{ReasonInvalidTx, ScoreScale * 10 / 100, 50},
	}
	for _, c := range cases {
		if got := ReputationPenaltyFor(c.reason); got != c.wantRep {
			t.Errorf("ReputationPenaltyFor(%v) = %d, want %d", c.reason, got, c.wantRep)
		}
		if got := StakeSlashFor(c.reason); got.Cmp(big.NewInt(c.wantStake)) != 0 {
			t.Errorf("StakeSlashFor(%v) = %s, want %d", c.reason, got.String(), c.wantStake)
		}
	}
}
