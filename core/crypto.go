package core

// crypto.go – PlatariumCore
//
// The execution/consensus core never chooses a concrete signature scheme
// itself; it invokes two small capability interfaces. A default
// implementation backed by go-ethereum's secp256k1 primitives is provided
// for production use and for the CLI, but Transaction and Execution only
// ever depend on the interfaces below.

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// DomainSeparator is prefixed to every message before hashing, so that a
// digest produced for one purpose can never collide with a digest computed
// elsewhere in the system for a different purpose.
const DomainSeparator = "PlatariumSignature:"

// Hasher produces a 32-byte digest of a message with the domain separator
// folded in.
type Hasher interface {
	Hash(message []byte) [32]byte
}

// SignatureVerifier verifies a signature over message_bytes against an
// address, without the core knowing which concrete scheme produced it.
type SignatureVerifier interface {
	Verify(message []byte, signature []byte, address Address) bool
}

// DomainHasher is the default Hasher: SHA-256 of the domain separator
// concatenated with the message.
type DomainHasher struct{}

func (DomainHasher) Hash(message []byte) [32]byte {
	h := sha256.New()
	h.Write([]byte(DomainSeparator))
	h.Write(message)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HashHex hashes message and returns the lowercase hex digest, matching the
// wire format used for transaction and block digests.
func (d DomainHasher) HashHex(message []byte) string {
	sum := d.Hash(message)
	return hex.EncodeToString(sum[:])
}

// ECDSAVerifier verifies secp256k1 signatures using go-ethereum's crypto
// package, recovering the public key from the signature and comparing its
// derived address.
type ECDSAVerifier struct {
	Hasher Hasher
}

// NewECDSAVerifier constructs a verifier backed by DomainHasher.
func NewECDSAVerifier() ECDSAVerifier {
	return ECDSAVerifier{Hasher: DomainHasher{}}
}

// Verify recovers the public key from signature over Hash(message) and
// checks that it derives the expected address.
func (v ECDSAVerifier) Verify(message []byte, signature []byte, address Address) bool {
	if len(signature) != 65 {
		return false
	}
	digest := v.Hasher.Hash(message)
	pub, err := crypto.SigToPub(digest[:], signature)
	if err != nil {
		return false
	}
	recovered := AddressFromPublicKey(pub)
	return recovered == address
}

// AddressFromPublicKey derives the canonical Address for a public key, via
// go-ethereum's Keccak-based address derivation.
func AddressFromPublicKey(pub *ecdsa.PublicKey) Address {
	return Address(crypto.PubkeyToAddress(*pub).Hex())
}

// SignMessage signs Hash(message) with priv and returns a 65-byte
// recoverable signature. Provided for the CLI and for tests; the core
// itself never signs anything.
func SignMessage(message []byte, priv *ecdsa.PrivateKey) ([]byte, error) {
	digest := DomainHasher{}.Hash(message)
	sig, err := crypto.Sign(digest[:], priv)
	if err != nil {
		return nil, fmt.Errorf("sign message: %w", err)
	}
	return sig, nil
}
