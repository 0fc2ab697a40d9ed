package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUUID        = errors.New("uuid is required")
	ErrInvalidUUID      = errors.New("uuid is too long")
	ErrEmptyContentType = errors.New("content_type is required")
	ErrInvalidTimestamp = errors.New("timestamp is out of range")
	ErrNegativeLimit    = errors.New("limit must not be negative")
	ErrTooManyItems     = errors.New("too many items in one sync")

	ErrInvalidEmail     = errors.New("invalid email")
	ErrEmptyPassword    = errors.New("password is required")
	ErrInvalidPwCost    = errors.New("pw_cost must not be negative")
	ErrSamePassword     = errors.New("new password must differ from the current one")
	ErrEmptyNewPassword = errors.New("new password is required")
)
