package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/MKhiriev/go-notes-sync/models"
)

// Field name constants for account request validation.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldPwCost      = "pw_cost"
	FieldNewPassword = "new_password"
)

// AccountValidator validates register, sign in and change password requests.
type AccountValidator struct{}

// NewAccountValidator constructs an [AccountValidator].
func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate dispatches on the dynamic type of obj. Without fields, every
// rule of the type is applied.
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validate(value.Email, value.Password, value.PwCost, fields, FieldEmail, FieldPassword, FieldPwCost)
	case *models.RegisterRequest:
		return v.validate(value.Email, value.Password, value.PwCost, fields, FieldEmail, FieldPassword, FieldPwCost)

	case models.SignInRequest:
		return v.validate(value.Email, value.Password, 0, fields, FieldEmail, FieldPassword)
	case *models.SignInRequest:
		return v.validate(value.Email, value.Password, 0, fields, FieldEmail, FieldPassword)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validate(email, password string, pwCost int, fields []string, defaults ...string) error {
	if len(fields) == 0 {
		fields = defaults
	}

	for _, field := range fields {
		switch field {
		case FieldEmail:
			if err := ValidateEmail(email); err != nil {
				return err
			}
		case FieldPassword:
			if password == "" {
				return ErrEmptyPassword
			}
		case FieldPwCost:
			if pwCost < 0 {
				return ErrInvalidPwCost
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *AccountValidator) validateChangePassword(r models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPassword, FieldNewPassword, FieldPwCost}
	}

	for _, field := range fields {
		switch field {
		case FieldPassword:
			if r.CurrentPassword == "" {
				return ErrEmptyPassword
			}
		case FieldNewPassword:
			if r.NewPassword == "" {
				return ErrEmptyNewPassword
			}
			if r.NewPassword == r.CurrentPassword {
				return ErrSamePassword
			}
		case FieldPwCost:
			if r.PwCost < 0 {
				return ErrInvalidPwCost
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

// ValidateEmail accepts a bare RFC 5322 address without display name.
func ValidateEmail(email string) error {
	if email == "" || strings.TrimSpace(email) != email {
		return ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ErrInvalidEmail
	}

	return nil
}
