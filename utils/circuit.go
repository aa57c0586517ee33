// Package utils contains the helpers used to check native digests against
// their gnark circuit gadgets.
package utils

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
)

// hashCircuit asserts that the gadget applied to Inputs equals Hash.
type hashCircuit struct {
	Inputs []frontend.Variable
	Hash   frontend.Variable `gnark:",public"`

	gadget Hasher `gnark:"-"`
}

func (c *hashCircuit) Define(api frontend.API) error {
	h, err := c.gadget(api, c.Inputs...)
	if err != nil {
		return err
	}
	api.AssertIsEqual(h, c.Hash)
	return nil
}

// CheckSolved solves a circuit that hashes inputs with gadget and compares
// the result with expected, over the BN254 scalar field. It returns nil when
// the circuit is satisfied.
func CheckSolved(gadget Hasher, inputs []*big.Int, expected *big.Int) error {
	if gadget == nil {
		return fmt.Errorf("no circuit gadget")
	}
	circuit := &hashCircuit{
		Inputs: make([]frontend.Variable, len(inputs)),
		gadget: gadget,
	}
	witness := &hashCircuit{
		Inputs: make([]frontend.Variable, len(inputs)),
		Hash:   expected,
		gadget: gadget,
	}
	for i, x := range inputs {
		witness.Inputs[i] = x
	}
	return test.IsSolved(circuit, witness, ecc.BN254.ScalarField())
}
