package core

// confirmation.go – PlatariumCore
//
// Two-layer vote aggregation: L1 confirms individual transactions at a
// 67% threshold, L2 confirms assembled blocks at a 70% threshold. Both
// layers share the same generic threshold rule and majority computation.

const (
	L1ConfirmThresholdPct = 67
	L2ConfirmThresholdPct = 70
)

// Vote is a single validator's vote on a transaction or block.
type Vote int

const (
	VoteConfirm Vote = iota
	VoteReject
)

// NodeVote pairs a voting node id with its vote.
type NodeVote struct {
	NodeID string
	Vote   Vote
}

// ConfirmationResult is the outcome of aggregating a round of votes.
type ConfirmationResult int

const (
	ResultConfirmed ConfirmationResult = iota
	ResultRejected
)

// AggregateVotes applies the generic threshold rule
// confirm_count*100 >= total*thresholdPct, and separately computes the
// majority (Confirm iff confirm_count > total/2) to determine which voters
// are in the minority and should be penalized. Returns ErrNoVotes if votes
// is empty.
func AggregateVotes(votes []NodeVote, thresholdPct uint64) (ConfirmationResult, []string, error) {
	total := len(votes)
	if total == 0 {
		return ResultRejected, nil, ErrNoVotes
	}

	confirmCount := 0
	for _, v := range votes {
		if v.Vote == VoteConfirm {
			confirmCount++
		}
	}

	result := ResultRejected
	if uint64(confirmCount)*100 >= uint64(total)*thresholdPct {
		result = ResultConfirmed
	}

	majority := VoteReject
	if confirmCount*2 > total {
		majority = VoteConfirm
	}

	var toPenalize []string
	for _, v := range votes {
		if v.Vote != majority {
			toPenalize = append(toPenalize, v.NodeID)
		}
	}

	return result, toPenalize, nil
}

// VerifyTxForL1 is an advisory check of whether tx would currently be
// accepted against state; its result does not gate vote aggregation.
func VerifyTxForL1(state *State, tx *Transaction, verifier SignatureVerifier) bool {
	exec := NewExecutor(verifier, ExecutionSimulation)
	if err := exec.ValidateTransaction(tx); err != nil {
		return false
	}
	return exec.CheckTransactionApplicability(state, tx) == nil
}

// ConfirmTransactionL1 composes the advisory verification with L1 vote
// aggregation at the 67% threshold.
func ConfirmTransactionL1(state *State, tx *Transaction, verifier SignatureVerifier, votes []NodeVote) (ConfirmationResult, []string, error) {
	_ = VerifyTxForL1(state, tx, verifier)
	return AggregateVotes(votes, L1ConfirmThresholdPct)
}

// ProcessL2BlockVotes aggregates L2 votes on an assembled block at the 70%
// threshold.
func ProcessL2BlockVotes(votes []NodeVote) (ConfirmationResult, []string, error) {
	return AggregateVotes(votes, L2ConfirmThresholdPct)
}

// ApplyL1Penalties records a missed vote against every node in
// toPenalize, reducing their vote-accuracy-derived reputation.
func ApplyL1Penalties(registry *NodeRegistry, toPenalize []string) {
	for _, id := range toPenalize {
		_ = registry.RecordVote(id, true)
	}
}

// ApplyL2BlockPenalties records a missed vote against every node in
// toPenalize. Separate from Slashing (see slashing.go); both remain
// independently callable.
func ApplyL2BlockPenalties(registry *NodeRegistry, toPenalize []string) {
	for _, id := range toPenalize {
		_ = registry.RecordVote(id, true)
	}
}
