package fixture

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/poseidon-fixtures/hash"
	"github.com/vocdoni/poseidon-fixtures/hash/bn254/poseidon"
	"github.com/vocdoni/poseidon-fixtures/hash/bn254/poseidon2"
	"github.com/vocdoni/poseidon-fixtures/utils"
)

var defaultInputs = []string{"123456789", "987654321"}

func newPoseidon(c *qt.C, arity int) hash.Hasher {
	h, err := poseidon.New(arity)
	c.Assert(err, qt.IsNil)
	return h
}

func TestGenerateGolden(t *testing.T) {
	c := qt.New(t)
	f, err := Generate([]string{"1", "2"}, newPoseidon(c, 2))
	c.Assert(err, qt.IsNil)
	c.Assert(f.Inputs, qt.DeepEquals, []string{"1", "2"})
	c.Assert(f.Hash, qt.Equals,
		"7853200120776062878684798364095072458815029376092732009249414926327459813530")
	c.Assert(f.Hasher, qt.Equals, poseidon.Name)
}

func TestGenerateDeterministic(t *testing.T) {
	c := qt.New(t)
	h := newPoseidon(c, 2)
	f1, err := Generate(defaultInputs, h)
	c.Assert(err, qt.IsNil)
	f2, err := Generate(defaultInputs, h)
	c.Assert(err, qt.IsNil)
	c.Assert(f1.Hash, qt.Equals, f2.Hash)
	c.Assert(f1.Hash, qt.Matches, "[0-9]+")
}

func TestGenerateOrder(t *testing.T) {
	c := qt.New(t)
	h := newPoseidon(c, 2)
	ab, err := Generate([]string{"123456789", "987654321"}, h)
	c.Assert(err, qt.IsNil)
	ba, err := Generate([]string{"987654321", "123456789"}, h)
	c.Assert(err, qt.IsNil)
	c.Assert(ab.Hash, qt.Not(qt.Equals), ba.Hash)
	c.Assert(ba.Inputs, qt.DeepEquals, []string{"987654321", "123456789"})
}

func TestGenerateCanonicalInputs(t *testing.T) {
	c := qt.New(t)
	h := newPoseidon(c, 2)
	f, err := Generate([]string{"0001", " 2"}, h)
	c.Assert(err, qt.IsNil)
	c.Assert(f.Inputs, qt.DeepEquals, []string{"1", "2"})
}

func TestGenerateErrors(t *testing.T) {
	c := qt.New(t)
	h := newPoseidon(c, 2)

	_, err := Generate(nil, h)
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)

	_, err = Generate([]string{"1", "Fr(2)"}, h)
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)
	c.Assert(err, qt.ErrorIs, hash.ErrMalformed)

	_, err = Generate([]string{"1", hash.BN254ScalarField.String()}, h)
	c.Assert(err, qt.ErrorIs, ErrInvalidInput)
	c.Assert(err, qt.ErrorIs, hash.ErrOutOfField)

	_, err = Generate([]string{"1", "2", "3"}, h)
	c.Assert(err, qt.ErrorIs, ErrHashFailure)
	c.Assert(err, qt.ErrorIs, hash.ErrArity)
}

// defaultHash is the circom Poseidon digest of defaultInputs.
const defaultHash = "16832421271961222550979173996485995711342823810308835997146707681980704453417"

func TestPersistGolden(t *testing.T) {
	c := qt.New(t)
	dest := filepath.Join(t.TempDir(), "inputs", "input.json")

	f, err := Generate(defaultInputs, newPoseidon(c, 2))
	c.Assert(err, qt.IsNil)
	c.Assert(Persist(f, dest, LayoutX), qt.IsNil)

	loaded, err := Load(dest)
	c.Assert(err, qt.IsNil)
	c.Assert(loaded.Inputs, qt.DeepEquals, defaultInputs)
	c.Assert(loaded.Hash, qt.Equals, defaultHash)
}

func TestPersistCreatesDir(t *testing.T) {
	c := qt.New(t)
	dest := filepath.Join(t.TempDir(), "a", "b", "c", "input.json")
	f, err := Generate(defaultInputs, newPoseidon(c, 2))
	c.Assert(err, qt.IsNil)
	c.Assert(Persist(f, dest, LayoutX), qt.IsNil)
	_, err = os.Stat(dest)
	c.Assert(err, qt.IsNil)
}

func TestPersistOverwrites(t *testing.T) {
	c := qt.New(t)
	dest := filepath.Join(t.TempDir(), "input.json")
	old := bytes.Repeat([]byte("stale content "), 100)
	c.Assert(os.WriteFile(dest, old, 0o644), qt.IsNil)

	f, err := Generate(defaultInputs, newPoseidon(c, 2))
	c.Assert(err, qt.IsNil)
	c.Assert(Persist(f, dest, LayoutX), qt.IsNil)

	got, err := os.ReadFile(dest)
	c.Assert(err, qt.IsNil)
	expected, err := Marshal(f, LayoutX)
	c.Assert(err, qt.IsNil)
	c.Assert(string(got), qt.Equals, string(expected))
}

func TestGenerateArityMismatch(t *testing.T) {
	c := qt.New(t)
	dest := filepath.Join(t.TempDir(), "inputs", "input.json")
	f, err := Generate(defaultInputs, newPoseidon(c, 3))
	c.Assert(err, qt.ErrorIs, ErrHashFailure)
	c.Assert(f, qt.IsNil)
	_, err = os.Stat(dest)
	c.Assert(os.IsNotExist(err), qt.IsTrue)
}

func TestMarshalLayouts(t *testing.T) {
	c := qt.New(t)
	f := &Fixture{Inputs: []string{"1", "2"}, Hash: "3"}

	data, err := Marshal(f, LayoutX)
	c.Assert(err, qt.IsNil)
	s := string(data)
	c.Assert(s, qt.Contains, "\n  \"x\"")
	c.Assert(bytes.Index(data, []byte(`"x"`)) < bytes.Index(data, []byte(`"hash"`)), qt.IsTrue)
	c.Assert(s, qt.Not(qt.Contains), "values")

	data, err = Marshal(f, LayoutValues)
	c.Assert(err, qt.IsNil)
	s = string(data)
	c.Assert(s, qt.Contains, `"values"`)
	c.Assert(s, qt.Contains, `"hash_result"`)
	c.Assert(s, qt.Not(qt.Contains), `"x"`)

	_, err = Marshal(f, Layout("yaml"))
	c.Assert(err, qt.ErrorIs, ErrSerialization)
}

func TestRoundTrip(t *testing.T) {
	c := qt.New(t)
	// p - 1, the largest element of the field
	last := new(big.Int).Sub(hash.BN254ScalarField, big.NewInt(1))
	c.Assert(last.String(), qt.Equals,
		"21888242871839275222246405745257275088548364400416034343698204186575808495616")
	inputs := []string{last.String(), "0"}

	f, err := Generate(inputs, newPoseidon(c, 2))
	c.Assert(err, qt.IsNil)
	for _, layout := range []Layout{LayoutX, LayoutValues} {
		dest := filepath.Join(t.TempDir(), string(layout)+".json")
		c.Assert(Persist(f, dest, layout), qt.IsNil)
		loaded, err := Load(dest)
		c.Assert(err, qt.IsNil)
		c.Assert(loaded.Inputs, qt.DeepEquals, inputs)
		c.Assert(loaded.Hash, qt.Equals, f.Hash)
	}
}

func TestLoadErrors(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	c.Assert(err, qt.ErrorIs, ErrIOFailure)

	bad := filepath.Join(dir, "bad.json")
	c.Assert(os.WriteFile(bad, []byte("{"), 0o644), qt.IsNil)
	_, err = Load(bad)
	c.Assert(err, qt.ErrorIs, ErrSerialization)

	empty := filepath.Join(dir, "empty.json")
	c.Assert(os.WriteFile(empty, []byte(`{"x": ["1"]}`), 0o644), qt.IsNil)
	_, err = Load(empty)
	c.Assert(err, qt.ErrorIs, ErrSerialization)
}

func TestPersistIOFailure(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	// a regular file where a directory is expected
	blocker := filepath.Join(dir, "inputs")
	c.Assert(os.WriteFile(blocker, nil, 0o644), qt.IsNil)

	f := &Fixture{Inputs: []string{"1"}, Hash: "2"}
	err := Persist(f, filepath.Join(blocker, "input.json"), LayoutX)
	c.Assert(err, qt.ErrorIs, ErrIOFailure)
	c.Assert(Persist(f, "", LayoutX), qt.ErrorIs, ErrIOFailure)
}

func TestParseLayout(t *testing.T) {
	c := qt.New(t)
	l, err := ParseLayout("")
	c.Assert(err, qt.IsNil)
	c.Assert(l, qt.Equals, LayoutX)
	l, err = ParseLayout("values")
	c.Assert(err, qt.IsNil)
	c.Assert(l, qt.Equals, LayoutValues)
	_, err = ParseLayout("toml")
	c.Assert(err, qt.ErrorMatches, `unknown layout "toml".*`)
}

func TestVerify(t *testing.T) {
	c := qt.New(t)
	h := newPoseidon(c, 2)
	f, err := Generate(defaultInputs, h)
	c.Assert(err, qt.IsNil)
	c.Assert(Verify(f, h), qt.IsNil)

	tampered := &Fixture{Inputs: f.Inputs, Hash: "1"}
	c.Assert(Verify(tampered, h), qt.ErrorIs, ErrMismatch)

	tampered = &Fixture{Inputs: f.Inputs, Hash: "Fr(1)"}
	c.Assert(Verify(tampered, h), qt.ErrorIs, ErrInvalidInput)
}

func TestVerifyCircuit(t *testing.T) {
	c := qt.New(t)
	f, err := Generate(defaultInputs, newPoseidon(c, 2))
	c.Assert(err, qt.IsNil)
	c.Assert(f.Hash, qt.Equals, defaultHash)
	c.Assert(VerifyCircuit(f, utils.PoseidonHasher), qt.IsNil)

	tampered := &Fixture{Inputs: f.Inputs, Hash: "1"}
	c.Assert(VerifyCircuit(tampered, utils.PoseidonHasher), qt.ErrorIs, ErrMismatch)
}

func TestVerifyCircuitCompress(t *testing.T) {
	c := qt.New(t)
	h, err := poseidon2.NewCompress(2)
	c.Assert(err, qt.IsNil)
	f, err := Generate(defaultInputs, h)
	c.Assert(err, qt.IsNil)
	c.Assert(VerifyCircuit(f, utils.Poseidon2CompressHasher), qt.IsNil)

	tampered := &Fixture{Inputs: []string{"987654321", "123456789"}, Hash: f.Hash}
	c.Assert(VerifyCircuit(tampered, utils.Poseidon2CompressHasher), qt.ErrorIs, ErrMismatch)
}
