package core

// node_registry.go – PlatariumCore
//
// Validator scoring: reputation, load and selection weight, all as
// integer fixed-point values in 0..=SCORE_SCALE.

import (
	"math/big"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
)

const (
	ScoreScale = 1_000_000

	weightUptime       = 300
	weightLatency      = 200
	weightVoteAccuracy = 300
	weightStake        = 200
)

// NodeStatus is a validator's eligibility state.
type NodeStatus int

const (
	StatusActive NodeStatus = iota
	StatusSuspended
)

// Node is a validator's full scoring record.
type Node struct {
	NodeID    string
	PublicKey string
	Stake     *big.Int

	UptimeScore     uint64
	LatencyScore    uint64
	ReputationScore uint64
	LoadScore       uint64

	MissedVotes  uint64
	TotalVotes   uint64
	CurrentTasks uint64
	MaxCapacity  uint64

	Status NodeStatus

	// reputationPenalty is cumulative slashing debt subtracted from the
	// formula-derived reputation on every recompute, so that repeated
	// penalties (e.g. from ApplySlash) compound across the registry-wide
	// recomputes that stake/load/vote changes trigger, instead of being
	// wiped out by the next recompute.
	reputationPenalty uint64
}

// VoteAccuracy returns (total-missed)*SCALE/total, or SCALE if there have
// been no votes yet.
func (n Node) VoteAccuracy() uint64 {
	if n.TotalVotes == 0 {
		return ScoreScale
	}
	return (n.TotalVotes - n.MissedVotes) * ScoreScale / n.TotalVotes
}

func recomputeLoadScore(currentTasks, maxCapacity uint64) uint64 {
	if maxCapacity == 0 {
		return ScoreScale
	}
	load := currentTasks * ScoreScale / maxCapacity
	if load > ScoreScale {
		return ScoreScale
	}
	return load
}

func stakeWeight(stake, maxStake *big.Int) uint64 {
	if maxStake.Sign() == 0 {
		return ScoreScale
	}
	w := new(big.Int).Mul(stake, big.NewInt(ScoreScale))
	w.Div(w, maxStake)
	if w.Cmp(big.NewInt(ScoreScale)) > 0 {
		return ScoreScale
	}
	return w.Uint64()
}

func computeReputation(n Node, maxStake *big.Int) uint64 {
	sw := stakeWeight(n.Stake, maxStake)
	va := n.VoteAccuracy()
	baseline := (n.UptimeScore*weightUptime + n.LatencyScore*weightLatency + va*weightVoteAccuracy + sw*weightStake) / 1000
	if n.reputationPenalty >= baseline {
		return 0
	}
	return baseline - n.reputationPenalty
}

// SelectionWeightLegacy returns reputation*(SCALE-load)/SCALE.
func (n Node) SelectionWeightLegacy() uint64 {
	return n.ReputationScore * (ScoreScale - n.LoadScore) / ScoreScale
}

// SelectionWeightRatio returns reputation*SCALE/max(1,load); this is the
// weight validator selection samples on.
func (n Node) SelectionWeightRatio() uint64 {
	load := n.LoadScore
	if load < 1 {
		load = 1
	}
	return n.ReputationScore * ScoreScale / load
}

// NodeRegistry holds every known validator's scoring record.
type NodeRegistry struct {
	mu     sync.RWMutex
	nodes  map[string]Node
	logger *log.Logger
}

// NewNodeRegistry returns an empty registry. A nil logger defaults to the
// standard logrus logger.
func NewNodeRegistry(logger *log.Logger) *NodeRegistry {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &NodeRegistry{nodes: make(map[string]Node), logger: logger}
}

// Register adds a new node with default scores, failing if node_id is
// already present. MaxCapacity is clamped to a minimum of 1.
func (r *NodeRegistry) Register(nodeID, publicKey string, stake *big.Int, maxCapacity uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nodes[nodeID]; ok {
		return ErrDuplicateNode
	}
	if maxCapacity < 1 {
		maxCapacity = 1
	}
	r.nodes[nodeID] = Node{
		NodeID:          nodeID,
		PublicKey:       publicKey,
		Stake:           cloneInt(stake),
		UptimeScore:     ScoreScale,
		LatencyScore:    ScoreScale,
		ReputationScore: ScoreScale,
		MaxCapacity:     maxCapacity,
		Status:          StatusActive,
	}
	r.recomputeAllLocked()
	r.logger.WithField("node_id", nodeID).Info("node registered")
	return nil
}

// Unregister removes a node.
func (r *NodeRegistry) Unregister(nodeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.nodes[nodeID]; !ok {
		return ErrNodeNotFound
	}
	delete(r.nodes, nodeID)
	r.recomputeAllLocked()
	return nil
}

// Get returns a copy of the node's current record.
func (r *NodeRegistry) Get(nodeID string) (Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[nodeID]
	if !ok {
		return Node{}, ErrNodeNotFound
	}
	return n, nil
}

// GetAll returns every node, sorted by node_id.
func (r *NodeRegistry) GetAll() []Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(func(Node) bool { return true })
}

// GetEligible returns Active nodes only, sorted by node_id.
func (r *NodeRegistry) GetEligible() []Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(func(n Node) bool { return n.Status == StatusActive })
}

// WeightedNode pairs a node id with its selection weight.
type WeightedNode struct {
	NodeID string
	Weight uint64
}

// GetEligibleWithWeights returns Active nodes' selection-weight-ratio
// values, sorted by node_id.
func (r *NodeRegistry) GetEligibleWithWeights() []WeightedNode {
	eligible := r.GetEligible()
	out := make([]WeightedNode, len(eligible))
	for i, n := range eligible {
		w := n.SelectionWeightRatio()
		if w < 1 {
			w = 1
		}
		out[i] = WeightedNode{NodeID: n.NodeID, Weight: w}
	}
	return out
}

func (r *NodeRegistry) sortedLocked(keep func(Node) bool) []Node {
	out := make([]Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

// SetUptimeScore sets a node's uptime score, which must lie in
// 0..=SCORE_SCALE.
func (r *NodeRegistry) SetUptimeScore(nodeID string, score uint64) error {
	return r.updateScore(nodeID, score, func(n *Node, v uint64) { n.UptimeScore = v })
}

// SetLatencyScore sets a node's latency score, which must lie in
// 0..=SCORE_SCALE.
func (r *NodeRegistry) SetLatencyScore(nodeID string, score uint64) error {
	return r.updateScore(nodeID, score, func(n *Node, v uint64) { n.LatencyScore = v })
}

func (r *NodeRegistry) updateScore(nodeID string, score uint64, apply func(*Node, uint64)) error {
	if score > ScoreScale {
		return &ErrInvalidScore{Max: ScoreScale, Got: score}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[nodeID]
	if !ok {
		return ErrNodeNotFound
	}
	apply(&n, score)
	r.nodes[nodeID] = n
	r.recomputeAllLocked()
	return nil
}

// RecordVote records a vote outcome for nodeID, incrementing total_votes
// (and missed_votes if missed), which changes its vote-accuracy-derived
// reputation.
func (r *NodeRegistry) RecordVote(nodeID string, missed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[nodeID]
	if !ok {
		return ErrNodeNotFound
	}
	n.TotalVotes++
	if missed {
		n.MissedVotes++
	}
	r.nodes[nodeID] = n
	r.recomputeAllLocked()
	return nil
}

// SetLoad updates a node's current task count and capacity, recomputing
// its load score.
func (r *NodeRegistry) SetLoad(nodeID string, currentTasks, maxCapacity uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[nodeID]
	if !ok {
		return ErrNodeNotFound
	}
	if maxCapacity < 1 {
		maxCapacity = 1
	}
	n.CurrentTasks = currentTasks
	n.MaxCapacity = maxCapacity
	n.LoadScore = recomputeLoadScore(currentTasks, maxCapacity)
	r.nodes[nodeID] = n
	r.recomputeAllLocked()
	return nil
}

// SetStake updates a node's stake. Because this may change the
// registry-wide maximum stake, every node's reputation is recomputed.
func (r *NodeRegistry) SetStake(nodeID string, stake *big.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[nodeID]
	if !ok {
		return ErrNodeNotFound
	}
	n.Stake = cloneInt(stake)
	r.nodes[nodeID] = n
	r.recomputeAllLocked()
	return nil
}

// SetStatus sets a node's eligibility status.
func (r *NodeRegistry) SetStatus(nodeID string, status NodeStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[nodeID]
	if !ok {
		return ErrNodeNotFound
	}
	n.Status = status
	r.nodes[nodeID] = n
	return nil
}

// ApplyReputationPenalty reduces a node's reputation by amount, saturating
// at 0, suspending it if the result falls below suspensionThreshold. The
// penalty accumulates as debt against the node's formula-derived baseline,
// so it survives later registry-wide recomputes (stake, load, and vote
// updates) instead of being reset by them.
func (r *NodeRegistry) ApplyReputationPenalty(nodeID string, amount, suspensionThreshold uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.nodes[nodeID]
	if !ok {
		return ErrNodeNotFound
	}
	n.reputationPenalty += amount
	n.ReputationScore = computeReputation(n, r.maxStakeLocked())
	if n.ReputationScore < suspensionThreshold {
		n.Status = StatusSuspended
		r.logger.WithField("node_id", nodeID).Warn("node suspended")
	}
	r.nodes[nodeID] = n
	return nil
}

// maxStakeLocked returns the largest stake currently registered, or 0 if
// the registry is empty. Callers must hold r.mu.
func (r *NodeRegistry) maxStakeLocked() *big.Int {
	max := big.NewInt(0)
	for _, n := range r.nodes {
		if n.Stake.Cmp(max) > 0 {
			max = n.Stake
		}
	}
	return max
}

// recomputeAllLocked recomputes every node's load score and reputation
// using the registry-wide maximum stake. Callers must hold r.mu.
func (r *NodeRegistry) recomputeAllLocked() {
	maxStake := r.maxStakeLocked()
	for id, n := range r.nodes {
		n.LoadScore = recomputeLoadScore(n.CurrentTasks, n.MaxCapacity)
		n.ReputationScore = computeReputation(n, maxStake)
		r.nodes[id] = n
	}
}
