//go:build !unix

package arena

import "github.com/cockroachdb/errors"

// ErrMappingUnsupported ...
var ErrMappingUnsupported = errors.New("arena: memory mapping is not supported on this platform")

// NewMapped ...
func NewMapped() (*Arena, error) {
	return nil, ErrMappingUnsupported
}
