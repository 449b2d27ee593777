package migration

import "errors"

var (
	ErrEmptyBatch     = errors.New("migration batch has no accounts")
	ErrEncodeFailed   = errors.New("failed to encode migration payload")
	ErrInvalidBatchID = errors.New("invalid batch index or size")
)
