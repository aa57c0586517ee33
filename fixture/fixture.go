// Package fixture builds, stores and checks hash fixtures: an ordered list
// of input field elements together with the digest a hasher computes over
// them.
package fixture

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vocdoni/poseidon-fixtures/hash"
	"github.com/vocdoni/poseidon-fixtures/utils"
)

// Fixture pairs the inputs of a hash with its digest. Inputs and Hash hold
// canonical decimal strings.
type Fixture struct {
	Inputs []string
	Hash   string
	// Hasher names the hash function that produced Hash. It is not part of
	// the serialized layouts.
	Hasher string
}

// Generate hashes inputs with h and returns the resulting fixture. The
// inputs keep their order and are stored in canonical decimal form.
func Generate(inputs []string, h hash.Hasher) (*Fixture, error) {
	elems, err := parseInputs(inputs)
	if err != nil {
		return nil, err
	}
	digest, err := h.Hash(elems...)
	if err != nil {
		if errors.Is(err, hash.ErrOutOfField) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrHashFailure, h.Name(), err)
	}
	f := &Fixture{
		Inputs: make([]string, len(elems)),
		Hash:   digest.String(),
		Hasher: h.Name(),
	}
	for i, x := range elems {
		f.Inputs[i] = x.String()
	}
	return f, nil
}

// Elements returns the fixture inputs as integers.
func (f *Fixture) Elements() ([]*big.Int, error) {
	return parseInputs(f.Inputs)
}

// Verify recomputes the digest of the fixture inputs with h and compares
// it with the stored one.
func Verify(f *Fixture, h hash.Hasher) error {
	got, err := Generate(f.Inputs, h)
	if err != nil {
		return err
	}
	expected, err := hash.ParseElement(f.Hash)
	if err != nil {
		return fmt.Errorf("%w: hash: %w", ErrInvalidInput, err)
	}
	if got.Hash != expected.String() {
		return fmt.Errorf("%w: stored %s, computed %s", ErrMismatch, f.Hash, got.Hash)
	}
	return nil
}

// VerifyCircuit checks that the circuit gadget, fed with the fixture
// inputs, produces the stored digest.
func VerifyCircuit(f *Fixture, gadget utils.Hasher) error {
	elems, err := f.Elements()
	if err != nil {
		return err
	}
	expected, err := hash.ParseElement(f.Hash)
	if err != nil {
		return fmt.Errorf("%w: hash: %w", ErrInvalidInput, err)
	}
	if err := utils.CheckSolved(gadget, elems, expected); err != nil {
		return fmt.Errorf("%w: circuit: %w", ErrMismatch, err)
	}
	return nil
}

func parseInputs(inputs []string) ([]*big.Int, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: empty input set", ErrInvalidInput)
	}
	elems := make([]*big.Int, len(inputs))
	for i, s := range inputs {
		x, err := hash.ParseElement(s)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %w", ErrInvalidInput, i, err)
		}
		elems[i] = x
	}
	return elems, nil
}
