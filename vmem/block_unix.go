//go:build linux || darwin || freebsd

package vmem

import (
	"golang.org/x/sys/unix"
)

func granularity() int {
	return unix.Getpagesize()
}

// reserveRegion maps inaccessible anonymous memory. The kernel does not back
// PROT_NONE pages until they are made accessible.
func reserveRegion(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

func commitRegion(b []byte) error {
	return unix.Mprotect(b, unix.PROT_READ|unix.PROT_WRITE)
}

// decommitRegion drops the backing pages and makes the range inaccessible
// again, so a later commit sees zeroed memory.
func decommitRegion(b []byte) error {
	if err := unix.Madvise(b, unix.MADV_DONTNEED); err != nil {
		return err
	}
	return unix.Mprotect(b, unix.PROT_NONE)
}

func releaseRegion(b []byte) error {
	return unix.Munmap(b)
}
