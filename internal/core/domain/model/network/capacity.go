package network

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is returned when a batch admission would push a
// resource past its configured maximum. The wrapped message names the
// resource and its remaining headroom so callers can surface it directly.
var ErrCapacityExceeded = errors.New("capacity exceeded")

func capacityExceeded(resource string, headroom, requested int) error {
	return fmt.Errorf("%w: %s has headroom %d, requested %d",
		ErrCapacityExceeded, resource, headroom, requested)
}
