package poseidon2

import (
	"fmt"
	"math/big"
	"slices"
)

// SortHint writes its inputs to out in ascending order. The circuit uses it
// to place the two children of an internal node as (min, max) before
// absorbing them, matching the ordering of the native chain.
func SortHint(_ *big.Int, in, out []*big.Int) error {
	if len(in) != len(out) {
		return fmt.Errorf("sort hint: %d inputs for %d outputs", len(in), len(out))
	}
	sorted := slices.SortedFunc(slices.Values(in), (*big.Int).Cmp)
	for i, v := range sorted {
		out[i].Set(v)
	}
	return nil
}
