// Package census generates Merkle-tree fixtures: the root of an arbo sparse
// Merkle tree and the inclusion proof of each of its leaves, ready to be fed
// to census proof circuits.
package census

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	arbotree "github.com/vocdoni/arbo"
	"github.com/vocdoni/poseidon-fixtures/fixture"
	"github.com/vocdoni/poseidon-fixtures/hash"
	"go.vocdoni.io/dvote/db"
	"go.vocdoni.io/dvote/db/pebbledb"
	"go.vocdoni.io/dvote/tree/arbo"
)

const (
	// HasherPoseidon builds the tree with the circom Poseidon hash; field
	// elements are encoded little-endian.
	HasherPoseidon = "poseidon"
	// HasherPoseidon2 builds the tree with the Poseidon2 hash; field
	// elements are encoded big-endian.
	HasherPoseidon2 = "poseidon2"
	// DefaultMaxLevels is the tree depth used when none is configured.
	DefaultMaxLevels = 64
)

// Config of a census fixture run. Dir is the parent of the temporary
// database directory, the system temp dir if empty. Keys must fit in
// MaxLevels bits.
type Config struct {
	Dir       string
	MaxLevels int
	Hasher    string
}

// Leaf is a key/value pair in canonical decimal form.
type Leaf struct {
	Key   string
	Value string
}

// Proof is the inclusion proof of a leaf; Siblings always holds MaxLevels
// entries, padded with zeros.
type Proof struct {
	Key      string   `json:"key"`
	Value    string   `json:"value"`
	Siblings []string `json:"siblings"`
}

// Fixture is the persisted census.
type Fixture struct {
	Hasher string  `json:"hasher"`
	Levels int     `json:"levels"`
	Root   string  `json:"root"`
	Proofs []Proof `json:"proofs"`
}

// ParseLeaf parses a "key=value" pair.
func ParseLeaf(s string) (Leaf, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return Leaf{}, fmt.Errorf("%w: leaf %q is not key=value", fixture.ErrInvalidInput, s)
	}
	return Leaf{Key: strings.TrimSpace(k), Value: strings.TrimSpace(v)}, nil
}

// encoding turns field elements into the byte form expected by a tree hash
// function and back.
type encoding struct {
	toBytes func(*big.Int) []byte
	toInt   func([]byte) *big.Int
}

var (
	littleEndian = encoding{
		toBytes: func(x *big.Int) []byte {
			b := minimalBytes(x)
			for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
				b[i], b[j] = b[j], b[i]
			}
			return b
		},
		toInt: arbo.BytesLEToBigInt,
	}
	bigEndian = encoding{
		toBytes: minimalBytes,
		toInt:   func(b []byte) *big.Int { return new(big.Int).SetBytes(b) },
	}
)

// minimalBytes returns the big-endian bytes of x without leading zeros; the
// tree rejects keys longer than its depth allows.
func minimalBytes(x *big.Int) []byte {
	if x.Sign() == 0 {
		return []byte{0}
	}
	return x.Bytes()
}

func hashFunction(name string) (arbotree.HashFunction, encoding, error) {
	switch name {
	case HasherPoseidon:
		return arbotree.HashFunctionPoseidon, littleEndian, nil
	case HasherPoseidon2:
		return arbotree.HashFunctionPoseidon2, bigEndian, nil
	}
	return nil, encoding{}, fmt.Errorf("%w: unknown census hasher %q", fixture.ErrInvalidInput, name)
}

type parsedLeaf struct {
	key, value *big.Int
}

func parseLeaves(leaves []Leaf, levels int) ([]parsedLeaf, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("%w: no leaves", fixture.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(leaves))
	parsed := make([]parsedLeaf, len(leaves))
	for i, l := range leaves {
		k, err := hash.ParseElement(l.Key)
		if err == nil {
			err = hash.CheckInField(k)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: leaf %d key: %w", fixture.ErrInvalidInput, i, err)
		}
		v, err := hash.ParseElement(l.Value)
		if err == nil {
			err = hash.CheckInField(v)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: leaf %d value: %w", fixture.ErrInvalidInput, i, err)
		}
		if k.BitLen() > levels {
			return nil, fmt.Errorf("%w: leaf %d key %s does not fit in %d levels",
				fixture.ErrInvalidInput, i, k, levels)
		}
		if seen[k.String()] {
			return nil, fmt.Errorf("%w: duplicated key %s", fixture.ErrInvalidInput, k)
		}
		seen[k.String()] = true
		parsed[i] = parsedLeaf{key: k, value: v}
	}
	return parsed, nil
}

// Generate inserts the leaves into a fresh tree and returns its root and the
// checked inclusion proof of every leaf, in the order of leaves.
func Generate(conf Config, leaves []Leaf) (*Fixture, error) {
	if conf.Hasher == "" {
		conf.Hasher = HasherPoseidon
	}
	hFn, enc, err := hashFunction(conf.Hasher)
	if err != nil {
		return nil, err
	}
	if conf.MaxLevels == 0 {
		conf.MaxLevels = DefaultMaxLevels
	}
	if conf.MaxLevels < 1 {
		return nil, fmt.Errorf("%w: invalid tree levels %d", fixture.ErrInvalidInput, conf.MaxLevels)
	}
	parsed, err := parseLeaves(leaves, conf.MaxLevels)
	if err != nil {
		return nil, err
	}

	// --- open DB & tree -------------------------------------------------------
	dir, err := os.MkdirTemp(conf.Dir, "census-")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fixture.ErrIOFailure, err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	database, err := pebbledb.New(db.Options{Path: dir})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fixture.ErrIOFailure, err)
	}
	defer func() { _ = database.Close() }()

	tree, err := arbotree.NewTree(arbotree.Config{
		Database:     database,
		MaxLevels:    conf.MaxLevels,
		HashFunction: hFn,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fixture.ErrHashFailure, err)
	}

	// --- insert the leaves ----------------------------------------------------
	keys := make([][]byte, len(parsed))
	values := make([][]byte, len(parsed))
	for i, l := range parsed {
		keys[i], values[i] = enc.toBytes(l.key), enc.toBytes(l.value)
		if err := tree.Add(keys[i], values[i]); err != nil {
			return nil, fmt.Errorf("%w: adding leaf %d: %w", fixture.ErrHashFailure, i, err)
		}
	}

	// --- root & proofs --------------------------------------------------------
	root, err := tree.Root()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fixture.ErrHashFailure, err)
	}
	f := &Fixture{
		Hasher: conf.Hasher,
		Levels: conf.MaxLevels,
		Root:   enc.toInt(root).String(),
		Proofs: make([]Proof, 0, len(parsed)),
	}
	for i, l := range parsed {
		_, _, packed, exist, err := tree.GenProof(keys[i])
		if err != nil {
			return nil, fmt.Errorf("%w: proof of leaf %d: %w", fixture.ErrHashFailure, i, err)
		}
		if !exist {
			return nil, fmt.Errorf("%w: leaf %d not found in tree", fixture.ErrHashFailure, i)
		}
		if ok, err := arbotree.CheckProof(hFn, keys[i], values[i], root, packed); err != nil || !ok {
			return nil, fmt.Errorf("%w: proof of leaf %d does not verify: %v", fixture.ErrHashFailure, i, err)
		}
		unpacked, err := arbo.UnpackSiblings(tree.HashFunction(), packed)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", fixture.ErrHashFailure, err)
		}
		siblings := make([]string, conf.MaxLevels)
		for j := range siblings {
			if j < len(unpacked) {
				siblings[j] = enc.toInt(unpacked[j]).String()
			} else {
				siblings[j] = "0"
			}
		}
		f.Proofs = append(f.Proofs, Proof{
			Key:      l.key.String(),
			Value:    l.value.String(),
			Siblings: siblings,
		})
	}
	return f, nil
}

// Persist writes the census fixture as indented JSON to dest.
func Persist(f *Fixture, dest string) error {
	return fixture.WriteJSON(dest, f)
}
