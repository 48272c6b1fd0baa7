package scheduler

import "fmt"

// Session size bounds. Sizes outside this range are caller errors and are
// surfaced rather than silently clamped.
const (
	MinSessionSize = 1
	MaxSessionSize = 500
)

// ErrInvalidSize indicates a requested session size outside the allowed
// bounds. The caller can correct and retry.
type ErrInvalidSize struct {
	Size int
}

func (e *ErrInvalidSize) Error() string {
	return fmt.Sprintf("session size %d out of bounds [%d, %d]", e.Size, MinSessionSize, MaxSessionSize)
}
