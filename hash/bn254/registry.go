// Package bn254 maps hasher names to the BN254 hash implementations and to
// their circuit gadgets.
package bn254

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/vocdoni/poseidon-fixtures/hash"
	"github.com/vocdoni/poseidon-fixtures/hash/bn254/mimc7"
	"github.com/vocdoni/poseidon-fixtures/hash/bn254/poseidon"
	"github.com/vocdoni/poseidon-fixtures/hash/bn254/poseidon2"
	"github.com/vocdoni/poseidon-fixtures/utils"
)

// ErrUnknownHasher is returned for names missing from the registry.
var ErrUnknownHasher = errors.New("unknown hasher")

// DefaultHasher is the hasher used when none is configured.
const DefaultHasher = poseidon.Name

type constructor func(arity int) (hash.Hasher, error)

var constructors = map[string]constructor{
	poseidon.Name: func(arity int) (hash.Hasher, error) {
		return poseidon.New(arity)
	},
	poseidon.MultiName: func(arity int) (hash.Hasher, error) {
		return poseidon.NewMulti(arity)
	},
	poseidon2.Name: func(arity int) (hash.Hasher, error) {
		return poseidon2.New(arity)
	},
	poseidon2.CompressName: func(arity int) (hash.Hasher, error) {
		return poseidon2.NewCompress(arity)
	},
	mimc7.Name: func(arity int) (hash.Hasher, error) {
		return mimc7.New(arity)
	},
}

var gadgets = map[string]utils.Hasher{
	poseidon.Name:          utils.PoseidonHasher,
	poseidon2.Name:         utils.Poseidon2Hasher,
	poseidon2.CompressName: utils.Poseidon2CompressHasher,
}

// New returns the hasher registered as name configured for arity inputs.
func New(name string, arity int) (hash.Hasher, error) {
	c, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownHasher, name, Names())
	}
	return c(arity)
}

// Names returns the registered hasher names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(constructors))
}

// Gadget returns the circuit counterpart of the named hasher, if any.
func Gadget(name string) (utils.Hasher, bool) {
	g, ok := gadgets[name]
	return g, ok
}
