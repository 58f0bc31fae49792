package filter

import (
	"errors"
	"fmt"
)

var ErrUnknownAxis = errors.New("unknown filter axis")

// InvalidValueError reports a value that cannot be stored on an axis.
type InvalidValueError struct {
	Axis   Axis
	Value  any
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s value %v: %s", e.Axis, e.Value, e.Reason)
}
