package hash

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// BN254ScalarField is the modulus of the field every hasher operates on.
var BN254ScalarField = fr.Modulus()

// ParseElement parses the decimal text of a field element. It only checks
// the syntax, the range is checked by the hashers with CheckInField.
func ParseElement(text string) (*big.Int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrMalformed)
	}
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a decimal integer", ErrMalformed, text)
	}
	return x, nil
}

// CheckInField returns ErrOutOfField unless 0 <= x < BN254ScalarField.
func CheckInField(x *big.Int) error {
	if x == nil {
		return fmt.Errorf("%w: nil element", ErrOutOfField)
	}
	if x.Sign() < 0 || x.Cmp(BN254ScalarField) >= 0 {
		return fmt.Errorf("%w: %s", ErrOutOfField, x)
	}
	return nil
}

// CheckInputs validates the number of inputs against arity and the range of
// every input.
func CheckInputs(arity int, inputs []*big.Int) error {
	if len(inputs) != arity {
		return fmt.Errorf("%w: expected %d inputs, got %d", ErrArity, arity, len(inputs))
	}
	for i, x := range inputs {
		if err := CheckInField(x); err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
	}
	return nil
}
