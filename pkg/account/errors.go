package account

import "errors"

var (
	ErrInvalidAccount = errors.New("invalid account")
	ErrDuplicate      = errors.New("account already exists")
	ErrNotFound       = errors.New("account not found")
	ErrSaveFailed     = errors.New("failed to save accounts")
)
