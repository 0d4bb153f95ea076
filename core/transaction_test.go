package core

import (
	"math/big"
	"testing"
)

type stubVerifier struct{ ok bool }

func (s stubVerifier) Verify(message []byte, signature []byte, address Address) bool {
	return s.ok
}

func mustTx(t *testing.T, reads, writes []Address) *Transaction {
	t.Helper()
	tx, err := NewTransaction("alice", "bob", PLP, big.NewInt(100), big.NewInt(1), 0, reads, writes, nil, nil)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	return tx
}

func TestTransactionHashIndependentOfReadWriteOrder(t *testing.T) {
	a := mustTx(t, []Address{"x", "y", "z"}, []Address{"w1", "w2"})
	b := mustTx(t, []Address{"z", "x", "y"}, []Address{"w2", "w1"})
	if a.Hash != b.Hash {
		t.Errorf("hash depends on read/write order: %s != %s", a.Hash, b.Hash)
	}
}

func TestTransactionHashChangesWithAmount(t *testing.T) {
	a := mustTx(t, nil, nil)
	b, err := NewTransaction("alice", "bob", PLP, big.NewInt(200), big.NewInt(1), 0, nil, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash == b.Hash {
		t.Error("hash must change when amount changes")
	}
}

func TestSigningMessageMatchesHashPreimage(t *testing.T) {
	tx := mustTx(t, []Address{"r1"}, []Address{"w1"})
	message, err := tx.SigningMessage()
	if err != nil {
		t.Fatalf("SigningMessage: %v", err)
	}
	want := DomainHasher{}.HashHex(message)
	if want != tx.Hash {
		t.Errorf("SigningMessage is not ComputeHash's preimage: hash(message)=%s, tx.Hash=%s", want, tx.Hash)
	}
}

func TestValidateBasicOrdering(t *testing.T) {
	zero := mustTx(t, nil, nil)
	zero.Amount = big.NewInt(0)
	if err := zero.ValidateBasic(stubVerifier{ok: true}); err != ErrInvalidAmount {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	lowFee := mustTx(t, nil, nil)
	lowFee.FeeUPLP = big.NewInt(0)
	err := lowFee.ValidateBasic(stubVerifier{ok: true})
	if _, ok := err.(*ErrInvalidFee); !ok {
		t.Errorf("expected *ErrInvalidFee, got %v", err)
	}

	badSig := mustTx(t, nil, nil)
	if err := badSig.ValidateBasic(stubVerifier{ok: false}); err != ErrInvalidSignature {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}

	good := mustTx(t, nil, nil)
	if err := good.ValidateBasic(stubVerifier{ok: true}); err != nil {
		t.Errorf("expected valid transaction to pass, got %v", err)
	}
}
