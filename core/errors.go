package core

import (
	"errors"
	"fmt"
	"math/big"
)

// errors.go – PlatariumCore
//
// Typed error values for every error kind the core produces, so callers can
// use errors.As/errors.Is across package boundaries.

// Sentinel errors with no associated data.
var (
	ErrInvalidAmount                = errors.New("invalid amount")
	ErrInvalidSignature             = errors.New("invalid signature")
	ErrCommitNotAllowedInSimulation = errors.New("commit not allowed in simulation")
	ErrNodeNotFound                 = errors.New("node not found")
	ErrDuplicateNode                = errors.New("duplicate node")
	ErrZeroCapacity                 = errors.New("zero capacity")
	ErrNoVotes                      = errors.New("no votes")
)

// ErrInvalidFee reports a fee below the configured minimum.
type ErrInvalidFee struct {
	Min uint64
	Got uint64
}

func (e *ErrInvalidFee) Error() string {
	return fmt.Sprintf("invalid fee: min %d, got %d", e.Min, e.Got)
}

// ErrInvalidScore reports a score outside 0..=SCORE_SCALE.
type ErrInvalidScore struct {
	Max uint64
	Got uint64
}

func (e *ErrInvalidScore) Error() string {
	return fmt.Sprintf("invalid score: max %d, got %d", e.Max, e.Got)
}

// ErrInsufficientBalance reports a balance check failure.
type ErrInsufficientBalance struct {
	Required  *big.Int
	Available *big.Int
}

func (e *ErrInsufficientBalance) Error() string {
	return fmt.Sprintf("insufficient balance: required %s, available %s", e.Required.String(), e.Available.String())
}

// ErrInvalidNonce reports a nonce mismatch.
type ErrInvalidNonce struct {
	Expected uint64
	Got      uint64
}

func (e *ErrInvalidNonce) Error() string {
	return fmt.Sprintf("invalid nonce: expected %d, got %d", e.Expected, e.Got)
}

// ErrDuplicateTransaction reports a mempool insertion of an already-present
// transaction hash.
type ErrDuplicateTransaction struct {
	Hash string
}

func (e *ErrDuplicateTransaction) Error() string {
	return fmt.Sprintf("duplicate transaction: %s", e.Hash)
}
