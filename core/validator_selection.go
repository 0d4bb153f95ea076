package core

// validator_selection.go – PlatariumCore
//
// Load-adaptive selection count and deterministic weighted sampling for
// the two validator layers. Every function here is pure and total in its
// inputs; nothing reads time, randomness, or hash-table iteration order.

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"
)

// LoadPercent returns currentTPS as an integer percentage of
// systemCapacity. systemCapacity must be > 0.
func LoadPercent(currentTPS, systemCapacity uint64) (uint64, error) {
	if systemCapacity == 0 {
		return 0, ErrZeroCapacity
	}
	return currentTPS * 100 / systemCapacity, nil
}

// SelectionPercentL1 maps a load percentage to an L1 selection percentage.
func SelectionPercentL1(loadPct uint64) uint64 {
	switch {
	case loadPct < 30:
		return 25
	case loadPct < 60:
		return 20
	case loadPct < 85:
		return 15
	default:
		return 10
	}
}

// SelectionPercentL2 maps a load percentage to an L2 selection percentage.
func SelectionPercentL2(loadPct uint64) uint64 {
	switch {
	case loadPct < 30:
		return 20
	case loadPct < 60:
		return 15
	case loadPct < 85:
		return 12
	default:
		return 10
	}
}

// SelectCount returns max(1, eligibleCount*percent/100), capped at
// eligibleCount, or 0 if eligibleCount is 0.
func SelectCount(eligibleCount int, percent uint64) int {
	if eligibleCount <= 0 {
		return 0
	}
	count := uint64(eligibleCount) * percent / 100
	if count < 1 {
		count = 1
	}
	if int(count) > eligibleCount {
		return eligibleCount
	}
	return int(count)
}

// ComputeSeedL1 derives the L1 sampling seed from the block number and the
// global entropy carried over from the previous finalized block.
func ComputeSeedL1(blockNumber uint64, entropy []byte) [32]byte {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], blockNumber)
	h.Write(buf[:])
	h.Write(entropy)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// ComputeSeedL2 derives the L2 sampling seed, distinguished from L1's by an
// "L2" prefix so the two pools are sampled independently.
func ComputeSeedL2(blockNumber uint64, entropy []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte("L2"))
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], blockNumber)
	h.Write(buf[:])
	h.Write(entropy)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// hashForRound returns the first 8 bytes, little-endian, of
// SHA256(seed || le_u32(round)).
func hashForRound(seed [32]byte, round uint32) uint64 {
	h := sha256.New()
	h.Write(seed[:])
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], round)
	h.Write(buf[:])
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// weightedSelectN deterministically samples n distinct node ids from
// weighted, without replacement, using seed. weighted must already be
// sorted by NodeID; the result is returned sorted by NodeID.
func weightedSelectN(weighted []WeightedNode, n int, seed [32]byte) []string {
	remaining := append([]WeightedNode(nil), weighted...)
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].NodeID < remaining[j].NodeID })

	selected := make([]string, 0, n)
	for round := 0; round < n && len(remaining) > 0; round++ {
		total := uint64(0)
		for _, w := range remaining {
			total += w.Weight
		}
		if total == 0 {
			break
		}
		slot := hashForRound(seed, uint32(round)) % total

		cumulative := uint64(0)
		idx := len(remaining) - 1
		for i, w := range remaining {
			cumulative += w.Weight
			if cumulative > slot {
				idx = i
				break
			}
		}

		selected = append(selected, remaining[idx].NodeID)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	sort.Strings(selected)
	return selected
}

// SelectValidatorsL1 picks the L1 pool for a transaction-confirmation
// round.
func SelectValidatorsL1(registry *NodeRegistry, currentTPS, systemCapacity, blockNumber uint64, entropy []byte) ([]string, error) {
	loadPct, err := LoadPercent(currentTPS, systemCapacity)
	if err != nil {
		return nil, err
	}
	eligible := registry.GetEligibleWithWeights()
	count := SelectCount(len(eligible), SelectionPercentL1(loadPct))
	if count == 0 {
		return nil, nil
	}
	seed := ComputeSeedL1(blockNumber, entropy)
	return weightedSelectN(eligible, count, seed), nil
}

// SelectValidatorsL2 picks the L2 pool for a block-confirmation round,
// excluding any node id present in excluded (typically the L1 pool), so
// the two pools are disjoint.
func SelectValidatorsL2(registry *NodeRegistry, currentTPS, systemCapacity, blockNumber uint64, entropy []byte, excluded map[string]struct{}) ([]string, error) {
	loadPct, err := LoadPercent(currentTPS, systemCapacity)
	if err != nil {
		return nil, err
	}
	all := registry.GetEligibleWithWeights()
	eligible := make([]WeightedNode, 0, len(all))
	for _, w := range all {
		if _, skip := excluded[w.NodeID]; skip {
			continue
		}
		eligible = append(eligible, w)
	}
	count := SelectCount(len(eligible), SelectionPercentL2(loadPct))
	if count == 0 {
		return nil, nil
	}
	seed := ComputeSeedL2(blockNumber, entropy)
	return weightedSelectN(eligible, count, seed), nil
}
