package core

import (
	"fmt"
	"math/big"
	"testing"
)

func txWithNonce(t *testing.T, nonce uint64) *Transaction {
	t.Helper()
	tx, err := NewTransaction("alice", "bob", PLP, big.NewInt(1), big.NewInt(1), nonce, nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return tx
}

func TestMempoolRejectsDuplicates(t *testing.T) {
	m := NewMempool()
	tx := txWithNonce(t, 0)
	if err := m.AddTransaction(tx); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := m.AddTransaction(tx)
	if _, ok := err.(*ErrDuplicateTransaction); !ok {
		t.Fatalf("expected *ErrDuplicateTransaction, got %v", err)
	}
}

func TestMempoolOrderingStable(t *testing.T) {
	m := NewMempool()
	for i := uint64(0); i < 20; i++ {
		tx := txWithNonce(t, i)
		if err := m.AddTransaction(tx); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	a := m.GetAllTransactions()
	b := m.GetAllTransactions()
	if len(a) != len(b) {
		t.Fatalf("length mismatch %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Hash != b[i].Hash {
			t.Fatalf("ordering not stable at %d: %s != %s", i, a[i].Hash, b[i].Hash)
		}
	}
}

func TestForcedInclusionFirst(t *testing.T) {
	m := NewMempool()
	var hashes []string
	for i := uint64(0); i < 5; i++ {
		tx := txWithNonce(t, i)
		if err := m.AddTransaction(tx); err != nil {
			t.Fatal(err)
		}
		hashes = append(hashes, tx.Hash)
	}
	// Force-include the last-arriving transaction first.
	m.AddForcedInclusion(hashes[4])

	selected := m.GetTransactionHashesForBlock(3)
	if len(selected) != 3 {
		t.Fatalf("expected 3 hashes, got %d", len(selected))
	}
	if selected[0] != hashes[4] {
		t.Errorf("forced-inclusion hash must come first, got %s", selected[0])
	}
}

func TestForcedInclusionCapacity(t *testing.T) {
	m := NewMempool()
	for i := 0; i < 300; i++ {
		m.AddForcedInclusion(fmt.Sprintf("hash-%d", i))
	}
	if got := len(m.GetForcedInclusion()); got != 256 {
		t.Errorf("forced-inclusion capacity = %d, want 256", got)
	}
}

func TestGetTransactionHashesForBlockDeterministic(t *testing.T) {
	m := NewMempool()
	for i := uint64(0); i < 10; i++ {
		if err := m.AddTransaction(txWithNonce(t, i)); err != nil {
			t.Fatal(err)
		}
	}
	a := m.GetTransactionHashesForBlock(5)
	b := m.GetTransactionHashesForBlock(5)
	if len(a) != len(b) {
		t.Fatal("length mismatch across calls")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("selection not deterministic at %d", i)
		}
	}
}
