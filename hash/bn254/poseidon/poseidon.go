// Package poseidon provides the circom compatible Poseidon hash over the
// BN254 scalar field as a fixed arity hash.Hasher.
package poseidon

import (
	"fmt"
	"math/big"

	iden3 "github.com/iden3/go-iden3-crypto/poseidon"
	"github.com/vocdoni/poseidon-fixtures/hash"
)

// MaxInputs is the widest input set supported by a single Poseidon
// permutation (t = 17).
const MaxInputs = 16

// Name of the hasher in the registry.
const Name = "poseidon"

// Poseidon hashes exactly arity inputs with the circom Poseidon
// construction.
type Poseidon struct {
	arity int
}

// New returns a Poseidon hasher for arity inputs. The arity must be between
// 1 and MaxInputs.
func New(arity int) (*Poseidon, error) {
	if arity < 1 || arity > MaxInputs {
		return nil, fmt.Errorf("%w: poseidon supports 1 to %d inputs, got %d", hash.ErrArity, MaxInputs, arity)
	}
	return &Poseidon{arity: arity}, nil
}

func (*Poseidon) Name() string { return Name }

func (p *Poseidon) Arity() int { return p.arity }

// Hash returns the Poseidon digest of the inputs.
func (p *Poseidon) Hash(inputs ...*big.Int) (hash.Digest, error) {
	if err := hash.CheckInputs(p.arity, inputs); err != nil {
		return hash.Digest{}, err
	}
	h, err := iden3.Hash(inputs)
	if err != nil {
		return hash.Digest{}, fmt.Errorf("poseidon: %w", err)
	}
	return hash.NewDigest(h), nil
}
