package utils

import (
	"github.com/consensys/gnark/frontend"
	"github.com/vocdoni/poseidon-fixtures/hash/bn254/poseidon"
	"github.com/vocdoni/poseidon-fixtures/hash/bn254/poseidon2"
)

// Hasher is the in-circuit counterpart of a native hash.Hasher.
type Hasher func(frontend.API, ...frontend.Variable) (frontend.Variable, error)

// PoseidonHasher wraps the circom compatible Poseidon circuit.
func PoseidonHasher(api frontend.API, data ...frontend.Variable) (frontend.Variable, error) {
	return poseidon.HashGnark(api, data...)
}

// Poseidon-2 Merkle–Damgård hasher (width-2) compatible with Circom SMT
//
// Poseidon2Hasher hashes 2- or 3-element tuples:
//   - 2 elements ⇒ internal node  ->  min‖max
//   - 3 elements ⇒ leaf           ->  key‖value‖flag
func Poseidon2Hasher(api frontend.API, data ...frontend.Variable) (frontend.Variable, error) {
	return poseidon2.HashPoseidon2Gnark(api, data...)
}

// Poseidon2CompressHasher compresses a pair with the width-2 Poseidon-2
// permutation and a feed-forward of the right input.
func Poseidon2CompressHasher(api frontend.API, data ...frontend.Variable) (frontend.Variable, error) {
	return poseidon2.CompressGnark(api, data...)
}
