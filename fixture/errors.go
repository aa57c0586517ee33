package fixture

import "errors"

var (
	// ErrInvalidInput is returned when an input element is malformed or out
	// of the field domain.
	ErrInvalidInput = errors.New("invalid input")
	// ErrHashFailure is returned when the hasher rejects the input set, for
	// example because its size does not match the hasher arity.
	ErrHashFailure = errors.New("hash failure")
	// ErrIOFailure is returned when the fixture file or its directory cannot
	// be read, created or written.
	ErrIOFailure = errors.New("io failure")
	// ErrSerialization is returned when a fixture cannot be encoded or
	// decoded.
	ErrSerialization = errors.New("serialization failure")
	// ErrMismatch is returned by Verify when the stored digest differs from
	// the recomputed one.
	ErrMismatch = errors.New("digest mismatch")
)
