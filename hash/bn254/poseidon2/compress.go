package poseidon2

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/vocdoni/poseidon-fixtures/hash"
)

// CompressName is the registry name of the compression hasher.
const CompressName = "poseidon2-compress"

// Compress hashes a pair (left, right) by permuting the width-2 state
// [left, right] and adding right back to the second word. Unlike Poseidon2
// with two inputs, the inputs are not sorted so the result depends on their
// order.
type Compress struct{}

// NewCompress returns the compression hasher; arity must be 2.
func NewCompress(arity int) (*Compress, error) {
	if arity != 2 {
		return nil, fmt.Errorf("%w: poseidon2-compress takes exactly 2 inputs, got %d", hash.ErrArity, arity)
	}
	return &Compress{}, nil
}

func (*Compress) Name() string { return CompressName }

func (*Compress) Arity() int { return 2 }

func (c *Compress) Hash(inputs ...*big.Int) (hash.Digest, error) {
	if err := hash.CheckInputs(c.Arity(), inputs); err != nil {
		return hash.Digest{}, err
	}
	var left, right fr.Element
	left.SetBigInt(inputs[0])
	right.SetBigInt(inputs[1])

	state := []fr.Element{left, right}
	if err := perm2.Permutation(state); err != nil {
		return hash.Digest{}, fmt.Errorf("poseidon2-compress: %w", err)
	}
	var result fr.Element
	result.Add(&state[1], &right) // feed-forward

	var out big.Int
	return hash.NewDigest(result.BigInt(&out)), nil
}
