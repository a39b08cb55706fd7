package core

// Validated wraps a value together with the implicit guarantee that a
// caller-supplied predicate succeeded at construction time. It cannot be
// constructed except through NewValidated — the overlay's mutating entry
// points only accept Validated keys and values.
type Validated[T any] struct {
	value T
}

// NewValidated checks guard against v and, on success, returns a Validated
// wrapping it. On failure it surfaces guard's error unchanged.
func NewValidated[T any](v T, guard func(T) error) (Validated[T], error) {
	if err := guard(v); err != nil {
		return Validated[T]{}, err
	}
	return Validated[T]{value: v}, nil
}

// Valid is a guard that always succeeds, for contexts where validation is
// unnecessary.
func Valid[T any](T) error { return nil }

// Get returns a read-only borrow of the wrapped value.
func (v Validated[T]) Get() T { return v.value }

// IntoRaw consumes the wrapper, returning the wrapped value. In Go this is
// observationally identical to Get — the distinction is kept for call
// sites that mean "I am done with the Validated wrapper now."
func (v Validated[T]) IntoRaw() T { return v.value }
