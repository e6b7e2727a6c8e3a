package cell

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/copystructure"
)

// CloneFunc returns a copy of v that shares no mutable state with it.
type CloneFunc[T any] func(v T) (T, error)

// Cloner is implemented by values that know how to deep copy themselves.
type Cloner[T any] interface {
	Clone() T
}

// JSONClone copies v through a JSON round trip. Only exported, serializable
// data survives; funcs, channels and cycles fail.
func JSONClone[T any](v T) (T, error) {
	var out T
	b, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("cell: json clone: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("cell: json clone: %w", err)
	}
	return out, nil
}

// DeepCopy copies v by walking it reflectively. Unexported struct fields are
// not copied.
func DeepCopy[T any](v T) (T, error) {
	var zero T
	out, err := copystructure.Copy(v)
	if err != nil {
		return zero, fmt.Errorf("cell: deep copy: %w", err)
	}
	if out == nil {
		return zero, nil
	}
	typed, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("cell: deep copy: got %T, want %T", out, zero)
	}
	return typed, nil
}

func MethodClone[T Cloner[T]](v T) (T, error) {
	return v.Clone(), nil
}

// NoClone is for immutable values, where sharing is harmless.
func NoClone[T any](v T) (T, error) {
	return v, nil
}
