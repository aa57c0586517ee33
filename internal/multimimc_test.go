package internal

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/iden3/go-iden3-crypto/mimc7"
)

func inputs(n int) []*big.Int {
	arr := make([]*big.Int, n)
	for i := range arr {
		arr[i] = big.NewInt(int64(i + 1))
	}
	return arr
}

func TestMultiMiMC7SingleChunk(t *testing.T) {
	c := qt.New(t)
	arr := inputs(MiMC7MaxInputs)
	got, err := MultiMiMC7(arr, nil)
	c.Assert(err, qt.IsNil)
	expected, err := mimc7.Hash(arr, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Cmp(expected), qt.Equals, 0)
}

func TestMultiMiMC7Chunks(t *testing.T) {
	c := qt.New(t)
	arr := inputs(MiMC7MaxInputs + 8)
	got, err := MultiMiMC7(arr, nil)
	c.Assert(err, qt.IsNil)

	first, err := mimc7.Hash(arr[:MiMC7MaxInputs], nil)
	c.Assert(err, qt.IsNil)
	second, err := mimc7.Hash(arr[MiMC7MaxInputs:], nil)
	c.Assert(err, qt.IsNil)
	expected, err := mimc7.Hash([]*big.Int{first, second}, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Cmp(expected), qt.Equals, 0)
}

func TestMultiMiMC7TooManyInputs(t *testing.T) {
	c := qt.New(t)
	_, err := MultiMiMC7(inputs(MiMC7MaxInputs*MiMC7MaxInputs+1), nil)
	c.Assert(err, qt.ErrorMatches, "too many inputs.*")
}
