package dom

import "errors"

var (
	// ErrInvalidPayload is returned when a node is requested with neither text
	// nor tag (or, from loaders, with both).
	ErrInvalidPayload = errors.New("invalid node payload")

	// ErrPreconditionViolation is returned when a structural operation is
	// invoked on nodes which do not satisfy its contract. Nothing is modified
	// when it is returned.
	ErrPreconditionViolation = errors.New("precondition violation")

	// ErrBrokenRing is reported by Check for sibling rings which do not hold
	// their invariants.
	ErrBrokenRing = errors.New("broken sibling ring")
)
