package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyPrincipal   = errors.New("principal is required")
	ErrEmptyProfileName = errors.New("profile name is required")
	ErrInvalidRole      = errors.New("invalid role")

	ErrEmptyChildID   = errors.New("child profile id is required")
	ErrEmptyChildName = errors.New("child profile name is required")

	ErrEmptyDataType   = errors.New("record data type is required")
	ErrEmptyRecordData = errors.New("record data is required")

	ErrEmptyPin = errors.New("pin is required")
)
