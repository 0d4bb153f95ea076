package core

// state.go – PlatariumCore
//
// Authoritative state of asset balances, fee balances and nonces, with
// O(1) snapshot and exact restore. Snapshots are immutable handles sharing
// the underlying maps; State never mutates a map in place, it always
// builds a fresh map and swaps it in, so an existing snapshot's maps are
// never observably altered by later mutation of the live state.

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math/big"
	"sort"
	"sync"
)

type assetKey struct {
	Addr  Address
	Asset string
}

// StateSnapshot is a read-only, O(1)-to-produce handle on a past version of
// State. Reading from a snapshot requires no synchronization and never
// mutates it.
type StateSnapshot struct {
	assetBalances map[assetKey]*big.Int
	uplpBalances  map[Address]*big.Int
	nonces        map[Address]uint64
}

// GetAssetBalance returns the balance of addr in asset, or zero if absent.
func (s StateSnapshot) GetAssetBalance(addr Address, asset Asset) *big.Int {
	if v, ok := s.assetBalances[assetKey{Addr: addr, Asset: asset.Canonical()}]; ok {
		return cloneInt(v)
	}
	return zeroInt()
}

// GetUPLPBalance returns the μPLP balance of addr, or zero if absent.
func (s StateSnapshot) GetUPLPBalance(addr Address) *big.Int {
	if v, ok := s.uplpBalances[addr]; ok {
		return cloneInt(v)
	}
	return zeroInt()
}

// GetNonce returns the nonce of addr, or zero if absent.
func (s StateSnapshot) GetNonce(addr Address) uint64 {
	return s.nonces[addr]
}

// ComputeStateRoot hashes, in address-sorted order, every PLP balance
// followed by every nonce (address_bytes || little_endian(value) for each),
// returning a hex digest. Per an explicitly preserved design decision,
// other-asset balances are not part of the state root.
func (s StateSnapshot) ComputeStateRoot() string {
	h := sha256.New()

	plpBalances := make(map[Address]*big.Int, len(s.assetBalances))
	for k, v := range s.assetBalances {
		if k.Asset == PLP.Canonical() {
			plpBalances[k.Addr] = v
		}
	}
	addrs := make([]string, 0, len(plpBalances))
	for addr := range plpBalances {
		addrs = append(addrs, string(addr))
	}
	sort.Strings(addrs)
	for _, addr := range addrs {
		h.Write([]byte(addr))
		h.Write(leBytes(plpBalances[Address(addr)], 16))
	}

	nonceAddrs := make([]string, 0, len(s.nonces))
	for addr := range s.nonces {
		nonceAddrs = append(nonceAddrs, string(addr))
	}
	sort.Strings(nonceAddrs)
	for _, addr := range nonceAddrs {
		h.Write([]byte(addr))
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], s.nonces[Address(addr)])
		h.Write(buf[:])
	}

	return hex.EncodeToString(h.Sum(nil))
}

// leBytes encodes v as a little-endian byte slice of the given width,
// zero-padded. v is assumed to fit in width bytes (u128 amounts fit in 16).
func leBytes(v *big.Int, width int) []byte {
	be := v.Bytes()
	out := make([]byte, width)
	for i := 0; i < len(be) && i < width; i++ {
		out[i] = be[len(be)-1-i]
	}
	return out
}

// State is the authoritative, mutable current state. All public methods
// are safe for concurrent use.
type State struct {
	mu            sync.RWMutex
	assetBalances map[assetKey]*big.Int
	uplpBalances  map[Address]*big.Int
	nonces        map[Address]uint64
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		assetBalances: make(map[assetKey]*big.Int),
		uplpBalances:  make(map[Address]*big.Int),
		nonces:        make(map[Address]uint64),
	}
}

func (s *State) GetAssetBalance(addr Address, asset Asset) *big.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.assetBalances[assetKey{Addr: addr, Asset: asset.Canonical()}]; ok {
		return cloneInt(v)
	}
	return zeroInt()
}

func (s *State) GetUPLPBalance(addr Address) *big.Int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.uplpBalances[addr]; ok {
		return cloneInt(v)
	}
	return zeroInt()
}

func (s *State) GetNonce(addr Address) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nonces[addr]
}

// SetBalance sets addr's PLP balance. For initialization only.
func (s *State) SetBalance(addr Address, amount *big.Int) {
	s.SetAssetBalance(addr, PLP, amount)
}

// SetAssetBalance sets addr's balance in asset. For initialization only.
func (s *State) SetAssetBalance(addr Address, asset Asset, amount *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneMapAssetBalances(s.assetBalances)
	next[assetKey{Addr: addr, Asset: asset.Canonical()}] = cloneInt(amount)
	s.assetBalances = next
}

// SetUPLPBalance sets addr's μPLP balance. For initialization only.
func (s *State) SetUPLPBalance(addr Address, amount *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneMapUPLP(s.uplpBalances)
	next[addr] = cloneInt(amount)
	s.uplpBalances = next
}

// SetNonce sets addr's nonce. For initialization only.
func (s *State) SetNonce(addr Address, nonce uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneMapNonces(s.nonces)
	next[addr] = nonce
	s.nonces = next
}

// ApplyTransfer performs the checks nonce → asset balance → fee balance, in
// that fixed order; all three must hold or state is left entirely
// unchanged. On success it debits/credits the asset balance, debits the
// sender's μPLP balance and credits the treasury, and — if expectedNonce is
// supplied — advances the sender's nonce to expectedNonce+1.
func (s *State) ApplyTransfer(from, to Address, asset Asset, amount, fee *big.Int, expectedNonce *uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expectedNonce != nil {
		got := s.nonces[from]
		if got != *expectedNonce {
			return &ErrInvalidNonce{Expected: *expectedNonce, Got: got}
		}
	}

	key := assetKey{Addr: from, Asset: asset.Canonical()}
	fromBalance := zeroInt()
	if v, ok := s.assetBalances[key]; ok {
		fromBalance = v
	}
	if fromBalance.Cmp(amount) < 0 {
		return &ErrInsufficientBalance{Required: cloneInt(amount), Available: cloneInt(fromBalance)}
	}

	fromUPLP := zeroInt()
	if v, ok := s.uplpBalances[from]; ok {
		fromUPLP = v
	}
	if fromUPLP.Cmp(fee) < 0 {
		return &ErrInsufficientBalance{Required: cloneInt(fee), Available: cloneInt(fromUPLP)}
	}

	nextAssets := cloneMapAssetBalances(s.assetBalances)
	nextAssets[key] = new(big.Int).Sub(fromBalance, amount)
	toKey := assetKey{Addr: to, Asset: asset.Canonical()}
	toBalance := zeroInt()
	if v, ok := nextAssets[toKey]; ok {
		toBalance = v
	}
	nextAssets[toKey] = new(big.Int).Add(toBalance, amount)
	s.assetBalances = nextAssets

	nextUPLP := cloneMapUPLP(s.uplpBalances)
	nextUPLP[from] = new(big.Int).Sub(fromUPLP, fee)
	treasuryBalance := zeroInt()
	if v, ok := nextUPLP[TreasuryAddress]; ok {
		treasuryBalance = v
	}
	nextUPLP[TreasuryAddress] = new(big.Int).Add(treasuryBalance, fee)
	s.uplpBalances = nextUPLP

	if expectedNonce != nil {
		nextNonces := cloneMapNonces(s.nonces)
		nextNonces[from] = *expectedNonce + 1
		s.nonces = nextNonces
	}

	return nil
}

// ApplyTransaction validates tx, then applies it as a transfer using tx's
// own nonce.
func (s *State) ApplyTransaction(tx *Transaction, verifier SignatureVerifier) error {
	if err := tx.ValidateBasic(verifier); err != nil {
		return err
	}
	nonce := tx.Nonce
	return s.ApplyTransfer(tx.From, tx.To, tx.Asset, tx.Amount, tx.FeeUPLP, &nonce)
}

// Snapshot produces an immutable handle sharing the underlying maps; O(1)
// because it only duplicates map references, never copies entries.
func (s *State) Snapshot() StateSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StateSnapshot{
		assetBalances: s.assetBalances,
		uplpBalances:  s.uplpBalances,
		nonces:        s.nonces,
	}
}

// Restore replaces all three maps with those of snap, atomically. snap is
// never mutated by this call, and remains valid (and unaffected by any
// further mutation of s) afterward.
func (s *State) Restore(snap StateSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assetBalances = snap.assetBalances
	s.uplpBalances = snap.uplpBalances
	s.nonces = snap.nonces
}

func cloneMapAssetBalances(m map[assetKey]*big.Int) map[assetKey]*big.Int {
	out := make(map[assetKey]*big.Int, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneMapUPLP(m map[Address]*big.Int) map[Address]*big.Int {
	out := make(map[Address]*big.Int, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneMapNonces(m map[Address]uint64) map[Address]uint64 {
	out := make(map[Address]uint64, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
