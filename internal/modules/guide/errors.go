package guide

import "errors"

var (
	ErrValidation = errors.New("validation error")
)
