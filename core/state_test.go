package core

import (
	"math/big"
	"testing"
)

func TestApplyTransferAtomicOnFailure(t *testing.T) {
	s := NewState()
	s.SetBalance("alice", big.NewInt(100))
	s.SetUPLPBalance("alice", big.NewInt(10))

	before := s.Snapshot()

	err := s.ApplyTransfer("alice", "bob", PLP, big.NewInt(1000), big.NewInt(1), nil)
	if err == nil {
		t.Fatal("expected insufficient-balance error")
	}

	after := s.Snapshot()
	if before.GetAssetBalance("alice", PLP).Cmp(after.GetAssetBalance("alice", PLP)) != 0 {
		t.Error("state mutated despite failed transfer")
	}
	if before.GetUPLPBalance("alice").Cmp(after.GetUPLPBalance("alice")) != 0 {
		t.Error("uplp balance mutated despite failed transfer")
	}
}

func TestApplyTransferInvalidNonce(t *testing.T) {
	s := NewState()
	s.SetBalance("alice", big.NewInt(100))
	s.SetUPLPBalance("alice", big.NewInt(10))
	s.SetNonce("alice", 5)

	expected := uint64(0)
	err := s.ApplyTransfer("alice", "bob", PLP, big.NewInt(1), big.NewInt(1), &expected)
	if _, ok := err.(*ErrInvalidNonce); !ok {
		t.Fatalf("expected *ErrInvalidNonce, got %v", err)
	}
}

func TestRestoreAfterTransfer(t *testing.T) {
	s := NewState()
	s.SetBalance("sender", big.NewInt(1000))
	s.SetUPLPBalance("sender", big.NewInt(10))
	s.SetNonce("sender", 0)
	s.SetBalance("receiver", big.NewInt(0))

	snap := s.Snapshot()

	n := uint64(0)
	if err := s.ApplyTransfer("sender", "receiver", PLP, big.NewInt(100), big.NewInt(1), &n); err != nil {
		t.Fatalf("ApplyTransfer: %v", err)
	}

	if got := s.GetAssetBalance("sender", PLP); got.Cmp(big.NewInt(900)) != 0 {
		t.Errorf("sender balance after transfer = %s, want 900", got)
	}
	if got := s.GetAssetBalance("receiver", PLP); got.Cmp(big.NewInt(100)) != 0 {
		t.Errorf("receiver balance after transfer = %s, want 100", got)
	}
	if got := s.GetUPLPBalance("sender"); got.Cmp(big.NewInt(9)) != 0 {
		t.Errorf("sender uplp after transfer = %s, want 9", got)
	}
	if got := s.GetUPLPBalance(TreasuryAddress); got.Cmp(big.NewInt(1)) != 0 {
		t.Errorf("treasury uplp after transfer = %s, want 1", got)
	}

	// Snapshot must be unaffected by the mutation above.
	if got := snap.GetAssetBalance("sender", PLP); got.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("snapshot sender balance changed: got %s, want 1000", got)
	}

	s.Restore(snap)
	if got := s.GetAssetBalance("sender", PLP); got.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("after restore sender balance = %s, want 1000", got)
	}
	if got := s.GetAssetBalance("receiver", PLP); got.Cmp(big.NewInt(0)) != 0 {
		t.Errorf("after restore receiver balance = %s, want 0", got)
	}

	// Snapshot remains valid and unchanged after restore is invoked again.
	if got := snap.GetAssetBalance("sender", PLP); got.Cmp(big.NewInt(1000)) != 0 {
		t.Errorf("snapshot mutated by restore: got %s, want 1000", got)
	}
}

func TestComputeStateRootDeterministic(t *testing.T) {
	a := NewState()
	a.SetBalance("alice", big.NewInt(10))
	a.SetBalance("bob", big.NewInt(20))
	a.SetNonce("alice", 1)

	b := NewState()
	b.SetBalance("bob", big.NewInt(20))
	b.SetBalance("alice", big.NewInt(10))
	b.SetNonce("alice", 1)

	if a.Snapshot().ComputeStateRoot() != b.Snapshot().ComputeStateRoot() {
		t.Error("equal states produced different state roots")
	}
}

func TestComputeStateRootIgnoresTokenBalances(t *testing.T) {
	a := NewState()
	a.SetBalance("alice", big.NewInt(10))

	b := NewState()
	b.SetBalance("alice", big.NewInt(10))
	b.SetAssetBalance("alice", Token("gold"), big.NewInt(999))

	if a.Snapshot().ComputeStateRoot() != b.Snapshot().ComputeStateRoot() {
		t.Error("token balances must not affect the state root")
	}
}
