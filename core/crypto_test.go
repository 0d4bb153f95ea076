package core

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

func TestECDSAVerifierRoundTrip(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	addr := AddressFromPublicKey(&priv.PublicKey)
	message := []byte(`{"from":"alice","to":"bob"}`)

	sig, err := SignMessage(message, priv)
	if err != nil {
		t.Fatalf("sign message: %v", err)
	}

	v := NewECDSAVerifier()
	if !v.Verify(message, sig, addr) {
		t.Error("expected valid signature to verify")
	}
	if v.Verify([]byte("tampered"), sig, addr) {
		t.Error("expected verification to fail for a different message")
	}

	other, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	otherAddr := AddressFromPublicKey(&other.PublicKey)
	if v.Verify(message, sig, otherAddr) {
		t.Error("expected verification to fail against an unrelated address")
	}
}

func TestDomainHasherHashHexDeterministic(t *testing.T) {
	h := DomainHasher{}
	a := h.HashHex([]byte("payload"))
	b := h.HashHex([]byte("payload"))
	if a != b {
		t.Errorf("expected deterministic hash, got %s and %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64-char hex digest, got %d chars", len(a))
	}
}
