package poseidon2

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
	"github.com/vocdoni/poseidon-fixtures/hash"
)

// Name of the Merkle-Damgard hasher in the registry.
const Name = "poseidon2"

var (
	// TypeHashPoseidon2 identifies the Poseidon2-BN254 hash
	TypeHashPoseidon2 = []byte("poseidon2")
	// HashFunctionPoseidon2 is a ready-to-use native Go implementation
	HashFunctionPoseidon2 HashPoseidon2
	// BN254BaseField is the base field for the BN254 curve.
	BN254BaseField = fr.Modulus()
)

// width-2 permutation shared by the native hashers (t=2, rF=6, rP=50)
var perm2 = poseidon2.NewPermutation(2, 6, 50)

// HashPoseidon2 hashes 2- or 3-element tuples of 32-byte big-endian limbs
// with Poseidon-2. Its method set matches the arbo tree hash functions.
type HashPoseidon2 struct{}

func (HashPoseidon2) Type() []byte { return TypeHashPoseidon2 }
func (HashPoseidon2) Len() int     { return 32 }

// Hash reduces each limb into the field and returns the 32-byte big-endian
// digest. It is fully compatible with the gnark gadget.
func (h HashPoseidon2) Hash(limbs ...[]byte) ([]byte, error) {
	if n := len(limbs); n != 2 && n != 3 {
		return nil, fmt.Errorf("%w: poseidon2 needs 2 or 3 limbs, got %d", hash.ErrArity, n)
	}
	elems := make([]fr.Element, len(limbs))
	for i, b := range limbs {
		if err := elems[i].SetBytesCanonical(h.SafeBigInt(new(big.Int).SetBytes(b))); err != nil {
			return nil, err
		}
	}
	cv, err := chain(elems)
	if err != nil {
		return nil, err
	}
	out := cv.Bytes()
	return out[:], nil
}

func (HashPoseidon2) SafeValue(x []byte) []byte {
	return BigIntToFFwithPadding(new(big.Int).SetBytes(x), BN254BaseField)
}

func (HashPoseidon2) SafeBigInt(x *big.Int) []byte {
	return BigIntToFFwithPadding(x, BN254BaseField)
}

// chain orders a 2-element tuple as (min, max) and folds the elements with
// the width-2 permutation: CV₀ = 0, CVᵢ₊₁ = P(CVᵢ, mᵢ)[1] + mᵢ.
func chain(elems []fr.Element) (fr.Element, error) {
	if len(elems) == 2 {
		a, b := elems[0].Bytes(), elems[1].Bytes()
		if bytes.Compare(a[:], b[:]) > 0 {
			elems[0], elems[1] = elems[1], elems[0]
		}
	}
	var cv fr.Element
	for _, m := range elems {
		st := [...]fr.Element{cv, m}
		if err := perm2.Permutation(st[:]); err != nil {
			return fr.Element{}, err
		}
		cv.Add(&st[1], &m)
	}
	return cv, nil
}

// Poseidon2 is the hash.Hasher view of HashPoseidon2: internal nodes
// (arity 2, inputs sorted before hashing) and leaves (arity 3).
type Poseidon2 struct {
	arity int
}

// New returns a Poseidon2 hasher; arity must be 2 or 3.
func New(arity int) (*Poseidon2, error) {
	if arity != 2 && arity != 3 {
		return nil, fmt.Errorf("%w: poseidon2 supports 2 or 3 inputs, got %d", hash.ErrArity, arity)
	}
	return &Poseidon2{arity: arity}, nil
}

func (*Poseidon2) Name() string { return Name }

func (p *Poseidon2) Arity() int { return p.arity }

// Hash returns the Poseidon2 digest of the inputs. With two inputs the
// result does not depend on their order.
func (p *Poseidon2) Hash(inputs ...*big.Int) (hash.Digest, error) {
	if err := hash.CheckInputs(p.arity, inputs); err != nil {
		return hash.Digest{}, err
	}
	elems := make([]fr.Element, len(inputs))
	for i, x := range inputs {
		elems[i].SetBigInt(x)
	}
	cv, err := chain(elems)
	if err != nil {
		return hash.Digest{}, fmt.Errorf("poseidon2: %w", err)
	}
	var out big.Int
	return hash.NewDigest(cv.BigInt(&out)), nil
}

func BigIntToFFwithPadding(x, modulus *big.Int) []byte {
	b := BigToFF(modulus, x).Bytes()
	for len(b) < 32 {
		b = append([]byte{0}, b...)
	}
	return b
}

func BigToFF(baseField, iv *big.Int) *big.Int {
	return new(big.Int).Mod(iv, baseField)
}
