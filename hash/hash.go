// Package hash defines the hashing capability consumed by the fixture
// generator: a Hasher with a fixed arity that turns BN254 scalar field
// elements into a Digest with a canonical decimal form.
package hash

import (
	"errors"
	"math/big"
)

var (
	// ErrMalformed is returned when a field element text is not a decimal
	// integer.
	ErrMalformed = errors.New("malformed field element")
	// ErrOutOfField is returned when an input is negative or not lower than
	// the field modulus.
	ErrOutOfField = errors.New("field element out of range")
	// ErrArity is returned when a hasher is configured with an unsupported
	// number of inputs, or called with a number of inputs different from the
	// configured one.
	ErrArity = errors.New("unsupported number of inputs")
)

// Hasher hashes a fixed number of field elements.
type Hasher interface {
	// Name identifies the hash function, e.g. "poseidon".
	Name() string
	// Arity is the exact number of inputs Hash accepts.
	Arity() int
	// Hash returns the digest of the inputs. Inputs out of the field domain
	// fail with ErrOutOfField and a wrong number of inputs with ErrArity.
	Hash(inputs ...*big.Int) (Digest, error)
}

// Digest is the result of a Hasher.
type Digest struct {
	v *big.Int
}

// NewDigest wraps a copy of x.
func NewDigest(x *big.Int) Digest {
	return Digest{v: new(big.Int).Set(x)}
}

// String returns the canonical decimal representation of the digest, with
// no sign, no prefix and no leading zeros.
func (d Digest) String() string {
	if d.v == nil {
		return "0"
	}
	return d.v.String()
}

// BigInt returns a copy of the digest value.
func (d Digest) BigInt() *big.Int {
	if d.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(d.v)
}

// Bytes returns the 32 bytes big-endian encoding of the digest.
func (d Digest) Bytes() []byte {
	return d.BigInt().FillBytes(make([]byte, 32))
}

// Equal reports whether both digests hold the same value.
func (d Digest) Equal(o Digest) bool {
	return d.BigInt().Cmp(o.BigInt()) == 0
}
