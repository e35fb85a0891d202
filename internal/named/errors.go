package named

import "errors"

var (
	// ErrAlreadyRewritten is returned when a call is resolved twice in one pass.
	ErrAlreadyRewritten = errors.New("named: call already rewritten in this pass")
	// ErrNotCall is returned for expressions that are neither calls nor `new`.
	ErrNotCall = errors.New("named: expression is not a call")
)
