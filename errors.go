package rosomaxa

import "errors"

var (
	// ErrInvalidConfig indicates Config failed validation: EliteSize < 2,
	// NodeSize < 2, or SelectionSize < 4. Callers that cannot tolerate this
	// error should use NewWithFallback, which never fails.
	ErrInvalidConfig = errors.New("rosomaxa: invalid configuration")
)
