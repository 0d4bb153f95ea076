package core

// transaction.go – PlatariumCore
//
// Canonical multi-asset transaction record and its content-addressed hash.
// The hash is a pure function of the transaction's other fields: reordering
// reads or writes never changes it, because both sets are sorted before
// hashing.

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
)

// Transaction is an immutable record created once by a client and
// thereafter only ever read.
type Transaction struct {
	Hash    string
	From    Address
	To      Address
	Asset   Asset
	Amount  *big.Int
	FeeUPLP *big.Int
	Nonce   uint64
	Reads   []Address
	Writes  []Address

	SigMain    []byte
	SigDerived []byte
}

// txHashData is the canonical, sorted-field record hashed to produce a
// transaction's content address.
type txHashData struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Asset   string   `json:"asset"`
	Amount  string   `json:"amount"`
	FeeUPLP string   `json:"fee_uplp"`
	Nonce   uint64   `json:"nonce"`
	Reads   []string `json:"reads"`
	Writes  []string `json:"writes"`
}

func sortedAddressStrings(addrs []Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = string(a)
	}
	sort.Strings(out)
	return out
}

// hashData builds the canonical preimage record for tx, with reads and
// writes sorted lexicographically.
func (tx *Transaction) hashData() txHashData {
	return txHashData{
		From:    string(tx.From),
		To:      string(tx.To),
		Asset:   tx.Asset.Canonical(),
		Amount:  cloneInt(tx.Amount).String(),
		FeeUPLP: cloneInt(tx.FeeUPLP).String(),
		Nonce:   tx.Nonce,
		Reads:   sortedAddressStrings(tx.Reads),
		Writes:  sortedAddressStrings(tx.Writes),
	}
}

// SigningMessage returns the canonical, sorted-field JSON encoding of tx
// that both ComputeHash and ValidateBasic's signature checks operate on.
// ValidateBasic verifies both SigMain and SigDerived over this exact byte
// slice against the sender's address, so each must be a signature by a key
// that derives tx.From.
func (tx *Transaction) SigningMessage() ([]byte, error) {
	data := tx.hashData()
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	return encoded, nil
}

// ComputeHash computes the transaction's content-addressed hash: a
// domain-separated SHA-256 digest of the canonical JSON encoding of the
// sorted-field record, hex encoded. It depends only on the canonical field
// values, never on insertion order of reads/writes, the assigned hash
// itself, or the signatures.
func (tx *Transaction) ComputeHash() (string, error) {
	encoded, err := tx.SigningMessage()
	if err != nil {
		return "", err
	}
	return DomainHasher{}.HashHex(encoded), nil
}

// NewTransaction constructs a transaction and populates its Hash field.
func NewTransaction(from, to Address, asset Asset, amount, feeUPLP *big.Int, nonce uint64, reads, writes []Address, sigMain, sigDerived []byte) (*Transaction, error) {
	tx := &Transaction{
		From:       from,
		To:         to,
		Asset:      asset,
		Amount:     cloneInt(amount),
		FeeUPLP:    cloneInt(feeUPLP),
		Nonce:      nonce,
		Reads:      append([]Address(nil), reads...),
		Writes:     append([]Address(nil), writes...),
		SigMain:    append([]byte(nil), sigMain...),
		SigDerived: append([]byte(nil), sigDerived...),
	}
	hash, err := tx.ComputeHash()
	if err != nil {
		return nil, err
	}
	tx.Hash = hash
	return tx, nil
}

// ValidateBasic performs the transaction's context-free validity checks, in
// fixed order: amount, fee, then both signatures.
func (tx *Transaction) ValidateBasic(verifier SignatureVerifier) error {
	if tx.Amount == nil || tx.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	fee := cloneInt(tx.FeeUPLP)
	if fee.Cmp(big.NewInt(MinFeeMicroPLP)) < 0 {
		return &ErrInvalidFee{Min: MinFeeMicroPLP, Got: safeUint64(fee)}
	}
	message, err := tx.SigningMessage()
	if err != nil {
		return err
	}
	if !verifier.Verify(message, tx.SigMain, tx.From) {
		return ErrInvalidSignature
	}
	if !verifier.Verify(message, tx.SigDerived, tx.From) {
		return ErrInvalidSignature
	}
	return nil
}

// safeUint64 returns v as a uint64, clamping to MaxUint64 if v does not fit
// (only used for reporting a fee value in an error message).
func safeUint64(v *big.Int) uint64 {
	if v.Sign() < 0 {
		return 0
	}
	if !v.IsUint64() {
		return ^uint64(0)
	}
	return v.Uint64()
}
