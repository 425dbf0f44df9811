//go:build unix

package arena

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// NewMapped allocates an arena from an anonymous private mapping so the
// memory lives outside the Go heap.
func NewMapped() (*Arena, error) {
	data, err := unix.Mmap(-1, 0, Capacity, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrap(err, "arena: mmap")
	}
	return &Arena{
		data:    data,
		release: unix.Munmap,
	}, nil
}
