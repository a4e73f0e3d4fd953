package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("admin login is not configured")
	ErrValidation         = errors.New("validation error")
)
