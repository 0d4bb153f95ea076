package core

// slashing.go – PlatariumCore
//
// Reputation penalty, stake slash, and suspension for validator
// misbehavior. Independent of (and callable alongside) the vote-accuracy
// penalties applied by the confirmation layers.

import (
	"math/big"

	log "github.com/sirupsen/logrus"
)

// SuspensionThreshold is the reputation floor below which a node is
// suspended.
const SuspensionThreshold = 100_000

// SlashingReason identifies why a node is being slashed.
type SlashingReason int

const (
	ReasonNoVote SlashingReason = iota
	ReasonAgainstMajority
	ReasonEquivocation
	ReasonInvalidTx
)

// ReputationPenaltyFor returns the reputation penalty, in SCORE_SCALE
// units, for the given reason.
func ReputationPenaltyFor(reason SlashingReason) uint64 {
	switch reason {
	case ReasonNoVote:
		return ScoreScale * 2 / 100
	case ReasonAgainstMajority:
		return ScoreScale * 3 / 100
	case ReasonEquivocation:
		return ScoreScale * 15 / 100
	case ReasonInvalidTx:
		return ScoreScale * 10 / 100
	default:
		return 0
	}
}

// StakeSlashFor returns the stake slash amount for the given reason.
func StakeSlashFor(reason SlashingReason) *big.Int {
	switch reason {
	case ReasonNoVote:
		return big.NewInt(1)
	case ReasonAgainstMajority:
		return big.NewInt(2)
	case ReasonEquivocation:
		return big.NewInt(100)
	case ReasonInvalidTx:
		return big.NewInt(50)
	default:
		return big.NewInt(0)
	}
}

// ApplySlash slashes nodeID's stake (saturating at 0, via SetStake — which
// triggers a registry-wide reputation recompute), then applies the
// reason's reputation penalty, suspending the node if its reputation falls
// below SuspensionThreshold.
func ApplySlash(registry *NodeRegistry, logger *log.Logger, nodeID string, reason SlashingReason) error {
	return ApplySlashWithThreshold(registry, logger, nodeID, reason, SuspensionThreshold)
}

// ApplySlashWithThreshold is ApplySlash with an explicit suspension
// threshold in place of SuspensionThreshold.
func ApplySlashWithThreshold(registry *NodeRegistry, logger *log.Logger, nodeID string, reason SlashingReason, suspensionThreshold uint64) error {
	n, err := registry.Get(nodeID)
	if err != nil {
		return err
	}

	slash := StakeSlashFor(reason)
	newStake := new(big.Int).Sub(n.Stake, slash)
	if newStake.Sign() < 0 {
		newStake = big.NewInt(0)
	}
	if err := registry.SetStake(nodeID, newStake); err != nil {
		return err
	}

	if err := registry.ApplyReputationPenalty(nodeID, ReputationPenaltyFor(reason), suspensionThreshold); err != nil {
		return err
	}

	if logger != nil {
		logger.WithField("node_id", nodeID).WithField("reason", reason).Info("slash applied")
	}
	return nil
}

// ApplySlashBatch applies ApplySlash to every node in nodeIDs, tolerating
// (logging and continuing past) individual ErrNodeNotFound errors.
func ApplySlashBatch(registry *NodeRegistry, logger *log.Logger, nodeIDs []string, reason SlashingReason) {
	for _, id := range nodeIDs {
		if err := ApplySlash(registry, logger, id, reason); err != nil {
			if logger != nil {
				logger.WithField("node_id", id).WithError(err).Warn("slash batch entry skipped")
			}
		}
	}
}
