package poseidon2

import (
	"fmt"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/permutation/poseidon2"
	"github.com/vocdoni/poseidon-fixtures/hash"
)

func init() { solver.RegisterHint(SortHint) }

func newPermutation(api frontend.API) (*poseidon2.Permutation, error) {
	// width-2 Poseidon-2 permutation (t=2, rF=6, rP=50)
	return poseidon2.NewPoseidon2FromParameters(api, 2, 6, 50)
}

// HashPoseidon2Gnark hashes 2- or 3-element tuples with Poseidon-2.
//
//	· internal node : H(min , max)
//	· leaf          : H(key , value , flag)
func HashPoseidon2Gnark(api frontend.API, limbs ...frontend.Variable) (frontend.Variable, error) {
	if n := len(limbs); n != 2 && n != 3 {
		return 0, fmt.Errorf("%w: poseidon2 needs 2 or 3 limbs, got %d", hash.ErrArity, n)
	}

	// off-circuit ordering for the 2-input case
	if len(limbs) == 2 {
		ord, err := api.NewHint(SortHint, 2, limbs[0], limbs[1]) // [min,max]
		if err != nil {
			return 0, err
		}
		api.AssertIsLessOrEqual(ord[0], ord[1]) // min ≤ max
		// the hint output must be a permutation of the inputs
		api.AssertIsEqual(api.Add(ord[0], ord[1]), api.Add(limbs[0], limbs[1]))
		api.AssertIsEqual(api.Mul(ord[0], ord[1]), api.Mul(limbs[0], limbs[1]))
		limbs = ord
	}

	perm, err := newPermutation(api)
	if err != nil {
		return 0, err
	}

	cv := frontend.Variable(0) // CV₀ := 0
	for _, m := range limbs {
		state := []frontend.Variable{cv, m} // absorb one limb
		if err := perm.Permutation(state); err != nil {
			return 0, err
		}
		cv = api.Add(state[1], m) // CVᵢ₊₁ = S₁ + mᵢ
	}
	return cv, nil
}

// CompressGnark is the in-circuit counterpart of Compress.
func CompressGnark(api frontend.API, inputs ...frontend.Variable) (frontend.Variable, error) {
	if len(inputs) != 2 {
		return 0, fmt.Errorf("%w: poseidon2-compress takes exactly 2 inputs, got %d", hash.ErrArity, len(inputs))
	}
	perm, err := newPermutation(api)
	if err != nil {
		return 0, err
	}
	state := []frontend.Variable{inputs[0], inputs[1]}
	if err := perm.Permutation(state); err != nil {
		return 0, err
	}
	return api.Add(state[1], inputs[1]), nil
}
