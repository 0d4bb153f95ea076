package core

import "math/big"

// types.go – PlatariumCore
//
// Shared value types used across the package.

// Address is an opaque string account identifier, including the literal
// sentinel value TreasuryAddress. The core never interprets an address's
// bytes; it only compares and orders addresses as strings.
type Address string

// TreasuryAddress is the sentinel account that receives every transaction
// fee.
const TreasuryAddress Address = "treasury"

// cloneInt returns a fresh, independently-mutable copy of v, treating a nil
// v as zero. Every constructor and setter that stores a *big.Int clones its
// input so callers cannot later mutate state through an aliased pointer.
func cloneInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

// zeroInt returns a fresh zero value, used as the default reading of any
// absent balance.
func zeroInt() *big.Int {
	return big.NewInt(0)
}
