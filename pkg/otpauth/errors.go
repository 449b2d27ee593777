package otpauth

import "errors"

var (
	ErrMissingAccountName = errors.New("missing account name")
	ErrMissingSecret      = errors.New("missing secret")
)
