package core

// mempool.go – PlatariumCore
//
// Fair, starvation-free pool of pending transactions with an
// anti-censorship forced-inclusion queue. Ordering is by
// (arrival_index, hash); arrival_index is a node-local monotonic counter
// that is never exposed, hashed, or signed.

import (
	"sort"
	"sync"
)

const maxForcedInclusion = 256

type mempoolEntry struct {
	tx           *Transaction
	arrivalIndex uint64
}

// Mempool holds pending transactions pending inclusion in a block.
type Mempool struct {
	mu              sync.RWMutex
	entries         map[string]mempoolEntry
	nextArrival     uint64
	forcedInclusion []string
	forcedSet       map[string]struct{}
}

// NewMempool returns an empty mempool.
func NewMempool() *Mempool {
	return &Mempool{
		entries:   make(map[string]mempoolEntry),
		forcedSet: make(map[string]struct{}),
	}
}

// AddTransaction inserts tx, assigning it the next monotonic arrival index.
// Duplicate hashes are rejected. No validation or execution happens here.
func (m *Mempool) AddTransaction(tx *Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[tx.Hash]; ok {
		return &ErrDuplicateTransaction{Hash: tx.Hash}
	}
	m.entries[tx.Hash] = mempoolEntry{tx: tx, arrivalIndex: m.nextArrival}
	m.nextArrival++
	return nil
}

// GetTransaction returns the transaction with the given hash, if present.
func (m *Mempool) GetTransaction(hash string) (*Transaction, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[hash]
	if !ok {
		return nil, false
	}
	return e.tx, true
}

// Contains reports whether hash is present in the pool.
func (m *Mempool) Contains(hash string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[hash]
	return ok
}

// RemoveTransaction removes the transaction with the given hash, if present.
func (m *Mempool) RemoveTransaction(hash string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, hash)
}

// RemoveTransactions removes every transaction in hashes, if present.
func (m *Mempool) RemoveTransactions(hashes []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range hashes {
		delete(m.entries, h)
	}
}

// Len returns the number of pending transactions.
func (m *Mempool) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// IsEmpty reports whether the pool has no pending transactions.
func (m *Mempool) IsEmpty() bool {
	return m.Len() == 0
}

// Clear removes every pending transaction and forced-inclusion entry.
func (m *Mempool) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]mempoolEntry)
	m.forcedInclusion = nil
	m.forcedSet = make(map[string]struct{})
}

// GetAllTransactions returns a snapshot of the pool, ordered by
// (arrival_index ascending, hash ascending). arrival_index itself is never
// returned.
func (m *Mempool) GetAllTransactions() []*Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orderedLocked()
}

func (m *Mempool) orderedLocked() []*Transaction {
	entries := make([]mempoolEntry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].arrivalIndex != entries[j].arrivalIndex {
			return entries[i].arrivalIndex < entries[j].arrivalIndex
		}
		return entries[i].tx.Hash < entries[j].tx.Hash
	})
	out := make([]*Transaction, len(entries))
	for i, e := range entries {
		out[i] = e.tx
	}
	return out
}

// AddForcedInclusion appends hash to the forced-inclusion queue if it is
// not already present and the queue has room (capacity 256); otherwise it
// is a no-op.
func (m *Mempool) AddForcedInclusion(hash string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.forcedSet[hash]; ok {
		return
	}
	if len(m.forcedInclusion) >= maxForcedInclusion {
		return
	}
	m.forcedInclusion = append(m.forcedInclusion, hash)
	m.forcedSet[hash] = struct{}{}
}

// GetForcedInclusion returns the forced-inclusion queue in order.
func (m *Mempool) GetForcedInclusion() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.forcedInclusion...)
}

// RemoveForcedInclusion removes every hash in hashes from the
// forced-inclusion queue.
func (m *Mempool) RemoveForcedInclusion(hashes []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	remove := make(map[string]struct{}, len(hashes))
	for _, h := range hashes {
		remove[h] = struct{}{}
	}
	next := make([]string, 0, len(m.forcedInclusion))
	for _, h := range m.forcedInclusion {
		if _, ok := remove[h]; ok {
			delete(m.forcedSet, h)
			continue
		}
		next = append(next, h)
	}
	m.forcedInclusion = next
}

// GetTransactionHashesForBlock returns, first, forced-inclusion hashes that
// are still present in the mempool (in queue order), then the remainder of
// the fair-ordered transactions not already chosen, until maxCount hashes
// are selected or the pool is exhausted.
func (m *Mempool) GetTransactionHashesForBlock(maxCount int) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if maxCount <= 0 {
		return nil
	}

	selected := make([]string, 0, maxCount)
	chosen := make(map[string]struct{}, maxCount)

	for _, h := range m.forcedInclusion {
		if len(selected) >= maxCount {
			break
		}
		if _, ok := m.entries[h]; !ok {
			continue
		}
		selected = append(selected, h)
		chosen[h] = struct{}{}
	}

	if len(selected) < maxCount {
		for _, tx := range m.orderedLocked() {
			if len(selected) >= maxCount {
				break
			}
			if _, ok := chosen[tx.Hash]; ok {
				continue
			}
			selected = append(selected, tx.Hash)
		}
	}

	return selected
}
