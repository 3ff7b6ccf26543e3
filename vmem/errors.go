package vmem

import "github.com/pkg/errors"

var (
	// ErrCapacityExceeded indicates that a commit would push the load past the
	// reserved capacity.
	ErrCapacityExceeded = errors.New("vmem: commit exceeds reserved capacity")

	// ErrUnsupported indicates that the platform has no virtual memory backend.
	ErrUnsupported = errors.New("vmem: virtual memory is not supported on this platform")
)
