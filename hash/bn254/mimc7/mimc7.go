// Package mimc7 exposes the iden3 MiMC7 hash over the BN254 scalar field as
// a fixed arity hash.Hasher.
package mimc7

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/poseidon-fixtures/hash"
	"github.com/vocdoni/poseidon-fixtures/internal"
)

// Name of the hasher in the registry.
const Name = "mimc7"

// MaxInputs is the widest input set accepted, 62 chunks of 62 inputs.
const MaxInputs = internal.MiMC7MaxInputs * internal.MiMC7MaxInputs

// MiMC hashes exactly arity inputs with MiMC7 and a zero key.
type MiMC struct {
	arity int
}

// New returns a MiMC7 hasher for arity inputs.
func New(arity int) (*MiMC, error) {
	if arity < 1 || arity > MaxInputs {
		return nil, fmt.Errorf("%w: mimc7 supports 1 to %d inputs, got %d", hash.ErrArity, MaxInputs, arity)
	}
	return &MiMC{arity: arity}, nil
}

func (*MiMC) Name() string { return Name }

func (m *MiMC) Arity() int { return m.arity }

func (m *MiMC) Hash(inputs ...*big.Int) (hash.Digest, error) {
	if err := hash.CheckInputs(m.arity, inputs); err != nil {
		return hash.Digest{}, err
	}
	h, err := internal.MultiMiMC7(inputs, nil)
	if err != nil {
		return hash.Digest{}, fmt.Errorf("mimc7: %w", err)
	}
	return hash.NewDigest(h), nil
}
