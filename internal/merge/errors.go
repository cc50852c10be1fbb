package merge

import "errors"

var (
	// ErrBusy signals that another cycle holds the write lock. The cycle
	// aborted with zero effect and is safe to retry later.
	ErrBusy = errors.New("merge cycle lock busy")

	// ErrCommit signals that the atomic insert of new records and codes
	// failed and the whole batch rolled back.
	ErrCommit = errors.New("merge commit failed")
)
