package poseidon

import (
	"fmt"

	"github.com/consensys/gnark/frontend"
	circuit "github.com/mdehoog/poseidon/circuits/poseidon"
	"github.com/vocdoni/poseidon-fixtures/hash"
)

// HashGnark is the in-circuit counterpart of Poseidon. It matches the
// circomlib Poseidon template for 1 to MaxInputs inputs.
func HashGnark(api frontend.API, inputs ...frontend.Variable) (frontend.Variable, error) {
	if n := len(inputs); n < 1 || n > MaxInputs {
		return 0, fmt.Errorf("%w: poseidon takes 1 to %d inputs, got %d", hash.ErrArity, MaxInputs, n)
	}
	return circuit.Hash(api, inputs), nil
}
