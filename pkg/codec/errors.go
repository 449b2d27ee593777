package codec

import "errors"

var (
	ErrInvalidSecretEncoding = errors.New("invalid base32 secret encoding")
	ErrInvalidEnvelope       = errors.New("invalid base64url envelope")
)
