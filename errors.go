package arena

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfMemory indicates that an allocation could not be served because
	// more memory could not be committed.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrOverflow indicates a size computation that does not fit in an int.
	ErrOverflow = errors.New("arena: size overflow")
)

// OutOfMemoryError describes a failed allocation. It matches ErrOutOfMemory
// with errors.Is and unwraps to the commit failure that caused it.
type OutOfMemoryError struct {
	Size      int
	Alignment int
	Err       error
}

func (e *OutOfMemoryError) Error() string {
	return fmt.Sprintf("arena: out of memory allocating %d bytes aligned to %d: %v", e.Size, e.Alignment, e.Err)
}

// Is reports whether target is ErrOutOfMemory.
func (e *OutOfMemoryError) Is(target error) bool {
	return target == ErrOutOfMemory
}

func (e *OutOfMemoryError) Unwrap() error {
	return e.Err
}
