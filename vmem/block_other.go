//go:build !(linux || darwin || freebsd || windows)

package vmem

import "os"

func granularity() int {
	return os.Getpagesize()
}

func reserveRegion(int) ([]byte, error) {
	return nil, ErrUnsupported
}

func commitRegion([]byte) error {
	return ErrUnsupported
}

func decommitRegion([]byte) error {
	return ErrUnsupported
}

func releaseRegion([]byte) error {
	return ErrUnsupported
}
