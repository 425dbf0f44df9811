package blockpool

import "github.com/cockroachdb/errors"

// Faults are programming errors. In ModeStrict the pool panics with one of
// them wrapped with details; in ModePermissive it reports them to the fault
// handler and the call fails without touching the pool.
var (
	// ErrNotInitialized indicates a call on a pool whose Init has not succeeded.
	ErrNotInitialized = errors.New("blockpool: pool is not initialized")

	// ErrAlreadyInitialized indicates a second Init on the same pool.
	ErrAlreadyInitialized = errors.New("blockpool: pool is already initialized")

	// ErrMisalignedAddr indicates a free of an address inside the pool that is not the start of a slot.
	ErrMisalignedAddr = errors.New("blockpool: address is not the start of a slot")

	// ErrDoubleFree indicates a free of a slot that is not in use.
	ErrDoubleFree = errors.New("blockpool: slot is already free")
)

// IsFault reports whether err is one of the pool faults.
func IsFault(err error) bool {
	return errors.IsAny(err, ErrNotInitialized, ErrAlreadyInitialized, ErrMisalignedAddr, ErrDoubleFree)
}

func newFault(fault error, format string, args ...interface{}) error {
	return errors.WithAssertionFailure(errors.Wrapf(fault, format, args...))
}
