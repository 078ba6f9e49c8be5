package validators

import (
	"context"

	"github.com/MKhiriev/guardian-alarm/models"
)

// Field name constants used to restrict validation to a subset of fields
// (field-level scoping).
const (
	// FieldName targets the display name of a user profile.
	FieldName = "name"

	// FieldRole targets the role of a user profile.
	FieldRole = "role"

	// FieldChildID targets the identifier of a child profile.
	FieldChildID = "child_id"

	// FieldChildName targets the display name of a child profile.
	FieldChildName = "child_name"

	// FieldDataType targets the free-text payload label of a biometric record.
	FieldDataType = "data_type"

	// FieldData targets the raw payload of a biometric record.
	FieldData = "data"
)

// Pin is a PIN candidate wrapped into a named type so that it can be routed
// through the type switch of Validate.
type Pin string

// InputValidator validates the domain inputs accepted by the mutating
// service operations. Touch samples are deliberately not validated: the
// store must round-trip arbitrary sensor values without clamping.
type InputValidator struct {
}

func NewInputValidator() Validator {
	return &InputValidator{}
}

func (v *InputValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserProfile:
		return v.validateUserProfile(ctx, value, fields...)
	case *models.UserProfile:
		return v.validateUserProfile(ctx, *value, fields...)

	case models.ChildProfile:
		return v.validateChildProfile(ctx, value, fields...)
	case *models.ChildProfile:
		return v.validateChildProfile(ctx, *value, fields...)

	case models.BiometricRecord:
		return v.validateBiometricRecord(ctx, value, fields...)
	case *models.BiometricRecord:
		return v.validateBiometricRecord(ctx, *value, fields...)

	case models.TouchRecord:
		return v.validateTouchRecord(ctx, value, fields...)
	case *models.TouchRecord:
		return v.validateTouchRecord(ctx, *value, fields...)

	case models.Role:
		if !value.Valid() {
			return ErrInvalidRole
		}
		return nil

	case Pin:
		if value == "" {
			return ErrEmptyPin
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

func (v *InputValidator) validateUserProfile(ctx context.Context, profile models.UserProfile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if profile.Name == "" {
				return ErrEmptyProfileName
			}
		case FieldRole:
			if !profile.Role.Valid() {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InputValidator) validateChildProfile(ctx context.Context, child models.ChildProfile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldChildID, FieldChildName}
	}

	for _, f := range fields {
		switch f {
		case FieldChildID:
			if child.ID == "" {
				return ErrEmptyChildID
			}
		case FieldChildName:
			if child.Name == "" {
				return ErrEmptyChildName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *InputValidator) validateBiometricRecord(ctx context.Context, record models.BiometricRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldChildID, FieldDataType, FieldData}
	}

	for _, f := range fields {
		switch f {
		case FieldChildID:
			if record.ChildID == "" {
				return ErrEmptyChildID
			}
		case FieldDataType:
			if record.DataType == "" {
				return ErrEmptyDataType
			}
		case FieldData:
			if len(record.Data) == 0 {
				return ErrEmptyRecordData
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateTouchRecord checks only the owning child id. An empty sample
// sequence is an accepted capture result, not a validation failure.
func (v *InputValidator) validateTouchRecord(ctx context.Context, record models.TouchRecord, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldChildID}
	}

	for _, f := range fields {
		switch f {
		case FieldChildID:
			if record.ChildID == "" {
				return ErrEmptyChildID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
