package profile

import "errors"

var (
	ErrRoleMismatch      = errors.New("profile kind does not match account role")
	ErrInvalidIdentifier = errors.New("invalid CPF/CNPJ")
	ErrNoSkills          = errors.New("at least one skill is required")
	ErrUserNotFound      = errors.New("user not found")
	ErrProfileNotFound   = errors.New("profile not found")
)
