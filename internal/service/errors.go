package service

import (
	"errors"
	"fmt"
)

var (
	// ErrForbidden is returned when the caller's role does not permit the
	// requested operation, or when an acknowledge arrives without a
	// preceding successful PIN verification.
	ErrForbidden = errors.New("operation forbidden for caller")

	// ErrNotFound is returned when a referenced child profile or record id
	// does not exist.
	ErrNotFound = errors.New("referenced entity not found")

	// ErrConflict is returned when creating a child profile whose id is
	// already taken. The pre-existing profile is left untouched.
	ErrConflict = errors.New("entity already exists")

	// ErrNotLinked is returned when a caller triggers the alarm without a
	// usable principal link.
	ErrNotLinked = errors.New("caller is not linked to a child profile")

	// ErrInvalidState is returned when acknowledging an alarm that is not
	// active.
	ErrInvalidState = errors.New("operation not allowed in current alarm state")

	// ErrValidationFailed wraps input validation failures from the
	// validators package.
	ErrValidationFailed = errors.New("validation failed")

	// ErrLastAdmin is a Conflict: demoting the only remaining admin would
	// lock every guardian operation out of the deployment.
	ErrLastAdmin = fmt.Errorf("%w: cannot demote the last remaining admin", ErrConflict)

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
