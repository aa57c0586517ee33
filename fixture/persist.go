package fixture

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Layout selects the JSON member names of a persisted fixture.
type Layout string

const (
	// LayoutX writes {"x": [...], "hash": "..."}.
	LayoutX Layout = "x"
	// LayoutValues writes {"values": [...], "hash_result": "..."}.
	LayoutValues Layout = "values"
)

// ParseLayout validates a layout name. The empty string selects LayoutX.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutX:
		return LayoutX, nil
	case LayoutValues:
		return LayoutValues, nil
	}
	return "", fmt.Errorf("unknown layout %q (available: %s, %s)", s, LayoutX, LayoutValues)
}

type xLayout struct {
	X    []string `json:"x"`
	Hash string   `json:"hash"`
}

type valuesLayout struct {
	Values     []string `json:"values"`
	HashResult string   `json:"hash_result"`
}

// anyLayout decodes both layouts; the pointers tell which one was found.
type anyLayout struct {
	X          []string `json:"x"`
	Hash       *string  `json:"hash"`
	Values     []string `json:"values"`
	HashResult *string  `json:"hash_result"`
}

// Marshal encodes the fixture with the given layout as indented JSON.
func Marshal(f *Fixture, layout Layout) ([]byte, error) {
	var v any
	switch layout {
	case "", LayoutX:
		v = xLayout{X: f.Inputs, Hash: f.Hash}
	case LayoutValues:
		v = valuesLayout{Values: f.Inputs, HashResult: f.Hash}
	default:
		return nil, fmt.Errorf("%w: unknown layout %q", ErrSerialization, layout)
	}
	return encode(v)
}

// Persist writes the fixture to dest, creating its parent directory if
// needed. An existing file at dest is overwritten.
func Persist(f *Fixture, dest string, layout Layout) error {
	data, err := Marshal(f, layout)
	if err != nil {
		return err
	}
	return writeFile(dest, data)
}

// WriteJSON encodes v as indented JSON and writes it to dest the same way
// Persist does.
func WriteJSON(dest string, v any) error {
	data, err := encode(v)
	if err != nil {
		return err
	}
	return writeFile(dest, data)
}

// Load reads a fixture written with any layout.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	var raw anyLayout
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSerialization, path, err)
	}
	switch {
	case raw.Hash != nil:
		return &Fixture{Inputs: raw.X, Hash: *raw.Hash}, nil
	case raw.HashResult != nil:
		return &Fixture{Inputs: raw.Values, Hash: *raw.HashResult}, nil
	}
	return nil, fmt.Errorf("%w: %s: no hash member found", ErrSerialization, path)
}

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v, jsontext.WithIndent("  "))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return append(data, '\n'), nil
}

func writeFile(dest string, data []byte) error {
	if dest == "" {
		return fmt.Errorf("%w: empty destination path", ErrIOFailure)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}
