package core

// block_assembly.go – PlatariumCore
//
// Dynamic block limits, the Merkle root over a block's transaction
// digests, and the block hash. Merkle root computation sorts both the
// input leaves and every intermediate layer before pairing — a
// set-commitment rather than a position-sensitive tree. This is load-
// bearing for cross-node equality and is preserved exactly as observed.

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"
)

const (
	defaultMaxTxsPerBlock = 500
	defaultMaxBlockSizeB  = 256 * 1024
	blockTimeMinSec       = 2
	blockTimeMaxSec       = 5
)

// MaxTransactionsPerBlock returns the adaptive transaction-count limit.
// With avgTPS == 0 the limit is min(500, mempoolSize). Note the documented
// edge case: when avgTPS > 0 and mempoolSize is 0, this collapses to
// min(500, avgTPS*5, 1) = 1; this is preserved exactly as specified, not
// "fixed".
func MaxTransactionsPerBlock(mempoolSize int, avgTPS uint64, loadPct uint64) int {
	if avgTPS == 0 {
		limit := defaultMaxTxsPerBlock
		if mempoolSize < limit {
			limit = mempoolSize
		}
		return limit
	}
	floor := mempoolSize
	if floor < 1 {
		floor = 1
	}
	limit := defaultMaxTxsPerBlock
	if byTPS := int(avgTPS) * 5; byTPS < limit {
		limit = byTPS
	}
	if floor < limit {
		limit = floor
	}
	return limit
}

// MaxBlockSizeBytes returns the adaptive block-size limit.
func MaxBlockSizeBytes(loadPct uint64) int {
	base := defaultMaxBlockSizeB
	switch {
	case loadPct >= 80:
		return base / 2
	case loadPct >= 50:
		return base * 3 / 4
	default:
		return base
	}
}

// MaxBlockTimeSec returns the adaptive block-time window, in 2..=5
// seconds.
func MaxBlockTimeSec(loadPct uint64) int {
	switch {
	case loadPct >= 80:
		return blockTimeMinSec
	case loadPct >= 50:
		return 3
	default:
		return blockTimeMaxSec
	}
}

// ComputeMerkleRoot computes the set-commitment Merkle root over a list of
// hex-encoded 32-byte digests. Malformed entries are dropped; if the
// result is empty, returns "0".
func ComputeMerkleRoot(hashesHex []string) string {
	layer := make([][]byte, 0, len(hashesHex))
	for _, hh := range hashesHex {
		decoded, err := hex.DecodeString(hh)
		if err != nil || len(decoded) != 32 {
			continue
		}
		layer = append(layer, decoded)
	}
	if len(layer) == 0 {
		return "0"
	}

	sortLayer(layer)

	for len(layer) > 1 {
		if len(layer)%2 == 1 {
			layer = append(layer, layer[len(layer)-1])
		}
		next := make([][]byte, 0, len(layer)/2)
		for i := 0; i < len(layer); i += 2 {
			h := sha256.New()
			h.Write(layer[i])
			h.Write(layer[i+1])
			next = append(next, h.Sum(nil))
		}
		sortLayer(next)
		layer = next
	}

	return hex.EncodeToString(layer[0])
}

func sortLayer(layer [][]byte) {
	sort.Slice(layer, func(i, j int) bool {
		for k := range layer[i] {
			if layer[i][k] != layer[j][k] {
				return layer[i][k] < layer[j][k]
			}
		}
		return false
	})
}

// ComputeBlockHash hashes the block header fields excluding the producer
// signature. previousHash, merkleRoot, stateRoot, and producerID are
// hashed as their raw UTF-8 bytes, not hex-decoded.
func ComputeBlockHash(blockNumber uint64, previousHash string, timestamp int64, merkleRoot, stateRoot, producerID string) string {
	h := sha256.New()

	var numBuf [8]byte
	binary.LittleEndian.PutUint64(numBuf[:], blockNumber)
	h.Write(numBuf[:])

	h.Write([]byte(previousHash))

	var tsBuf [8]byte
	binary.LittleEndian.PutUint64(tsBuf[:], uint64(timestamp))
	h.Write(tsBuf[:])

	h.Write([]byte(merkleRoot))
	h.Write([]byte(stateRoot))
	h.Write([]byte(producerID))

	return hex.EncodeToString(h.Sum(nil))
}

// Block is the assembled block header plus its transaction hashes.
type Block struct {
	BlockNumber       uint64
	Timestamp         int64
	PreviousHash      string
	TransactionHashes []string
	MerkleRoot        string
	StateRoot         string
	BlockHash         string
	ProducerID        string
	ProducerSig       []byte
}

// AssembleBlock composes the Merkle root, state root (already computed by
// the caller from a StateSnapshot), and block hash into a Block.
// ProducerSig is supplied externally and is opaque to the core.
func AssembleBlock(blockNumber uint64, timestamp int64, previousHash string, txHashes []string, stateRoot, producerID string, producerSig []byte) Block {
	merkleRoot := ComputeMerkleRoot(txHashes)
	blockHash := ComputeBlockHash(blockNumber, previousHash, timestamp, merkleRoot, stateRoot, producerID)
	return Block{
		BlockNumber:       blockNumber,
		Timestamp:         timestamp,
		PreviousHash:      previousHash,
		TransactionHashes: append([]string(nil), txHashes...),
		MerkleRoot:        merkleRoot,
		StateRoot:         stateRoot,
		BlockHash:         blockHash,
		ProducerID:        producerID,
		ProducerSig:       append([]byte(nil), producerSig...),
	}
}
