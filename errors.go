package gpnode

import "errors"

var (
	// ErrInvalidConfiguration signals malformed arity bounds, an out-of-range
	// arity mutation or an incomplete node template.
	ErrInvalidConfiguration = errors.New("gpnode: invalid configuration")
	// ErrClone signals that a node could not be re-instantiated from its template.
	ErrClone = errors.New("gpnode: clone failed")
)
