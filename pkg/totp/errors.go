package totp

import "errors"

var (
	ErrFailedToGenerateSecretKey = errors.New("failed to generate TOTP secret key")
	ErrInvalidSecret             = errors.New("invalid secret")
	ErrInvalidTime               = errors.New("time must not be before the unix epoch")
	ErrInvalidPeriod             = errors.New("period must be positive")
	ErrInvalidDigits             = errors.New("digits must be between 1 and 10")
	ErrInvalidAlgorithm          = errors.New("unsupported HMAC algorithm")
	ErrInvalidOTP                = errors.New("invalid OTP format")
)
