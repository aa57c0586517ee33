package poseidon

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/poseidon-fixtures/hash"
	sandbox "github.com/vocdoni/vocdoni-z-sandbox/hash/poseidon"
)

// MaxMultihashInputs defines the maximum number of inputs supported by the
// MultiPoseidon hasher.
const MaxMultihashInputs = 4096

// MultiName is the registry name of the MultiPoseidon hasher.
const MultiName = "multiposeidon"

// MultiPoseidon hashes inputs in chunks of 16 with Poseidon and then hashes
// the chunk digests, which allows wider input sets than a single
// permutation.
type MultiPoseidon struct {
	arity int
}

// NewMulti returns a MultiPoseidon hasher for arity inputs.
func NewMulti(arity int) (*MultiPoseidon, error) {
	if arity < 1 || arity > MaxMultihashInputs {
		return nil, fmt.Errorf("%w: multiposeidon supports 1 to %d inputs, got %d",
			hash.ErrArity, MaxMultihashInputs, arity)
	}
	return &MultiPoseidon{arity: arity}, nil
}

func (*MultiPoseidon) Name() string { return MultiName }

func (m *MultiPoseidon) Arity() int { return m.arity }

// Hash returns the chunked Poseidon digest of the inputs.
func (m *MultiPoseidon) Hash(inputs ...*big.Int) (hash.Digest, error) {
	if err := hash.CheckInputs(m.arity, inputs); err != nil {
		return hash.Digest{}, err
	}
	h, err := sandbox.MultiPoseidon(inputs...)
	if err != nil {
		return hash.Digest{}, fmt.Errorf("multiposeidon: %w", err)
	}
	return hash.NewDigest(h), nil
}
