package dashboard

// Slot is the outcome of one optional query: either a payload or an explicit
// absence carrying the failure that caused it. An absent slot is a normal
// value, not an error: the page renders without that section.
type Slot[T any] struct {
	value   T
	present bool
	reason  error
}

// Present wraps a successfully fetched payload.
func Present[T any](value T) Slot[T] {
	return Slot[T]{value: value, present: true}
}

// Absent marks a slot whose source failed or was skipped.
func Absent[T any](reason error) Slot[T] {
	return Slot[T]{reason: reason}
}

// IsPresent reports whether the slot holds a payload.
func (s Slot[T]) IsPresent() bool {
	return s.present
}

// Get returns the payload and whether it is present.
func (s Slot[T]) Get() (T, bool) {
	return s.value, s.present
}

// Reason returns why the slot is absent, or nil for a present slot.
func (s Slot[T]) Reason() error {
	return s.reason
}
