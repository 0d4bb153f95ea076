package core

import "fmt"

// asset.go – PlatariumCore
//
// Asset is a tagged value identifying what a transaction moves: either the
// native PLP currency or a named token. The canonical string form is the
// sole ordering and hashing key used everywhere else in the package.

// AssetKind discriminates the two Asset variants.
type AssetKind uint8

const (
	AssetPLP AssetKind = iota
	AssetToken
)

// Asset is either PLP or a named Token. Zero value is PLP.
type Asset struct {
	Kind AssetKind
	Name string // only meaningful when Kind == AssetToken
}

// PLP is the native currency asset.
var PLP = Asset{Kind: AssetPLP}

// Token constructs a named-token asset.
func Token(name string) Asset {
	return Asset{Kind: AssetToken, Name: name}
}

// Canonical returns the asset's canonical string form: "PLP" or
// "Token:<name>". This string never mutates and is the asset's sole
// ordering/hashing key.
func (a Asset) Canonical() string {
	switch a.Kind {
	case AssetToken:
		return fmt.Sprintf("Token:%s", a.Name)
	default:
		return "PLP"
	}
}

func (a Asset) String() string { return a.Canonical() }

// Equal reports whether two assets denote the same canonical value.
func (a Asset) Equal(other Asset) bool {
	return a.Canonical() == other.Canonical()
}
