// api/errors/unit_errors.go
package errors

import "errors"

var (
	ErrUnitNotFound    = errors.New("unit not found")
	ErrInvalidUnitData = errors.New("invalid unit data")
	ErrUnitNotArea     = errors.New("unit is a root secretariat, not an area")
	ErrUnitNotRoot     = errors.New("unit is an area, not a root secretariat")
	ErrParentInactive  = errors.New("parent secretariat is inactive")
)
