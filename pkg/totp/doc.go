// Package totp generates and validates one-time passwords as described in
// RFC 4226 (HOTP) and RFC 6238 (TOTP).
//
// Everything here is pure: codes are recomputed from the key and the clock on
// every call and no state is kept between calls.
//
// # Parameters
//
// Params selects the time step, the code length and the HMAC hash. Zero
// fields fall back to 30 seconds, 6 digits and SHA1, the values every common
// authenticator app assumes. Digits may range from 1 to 10.
//
// # Usage
//
//	secret, _ := totp.GenerateSecretKey()
//
//	code, err := totp.GenerateAt(secret, time.Now(), totp.Params{})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%s (%ds left)\n", code.Value, code.SecondsRemaining)
//
//	ok, _ := totp.Validate(secret, "123456", time.Now(), 1, totp.Params{})
//
// # Error Handling
//
// Generate returns ErrInvalidSecret for an empty key, ErrInvalidTime for a
// time before the epoch, and ErrInvalidPeriod, ErrInvalidDigits or
// ErrInvalidAlgorithm for bad parameters. GenerateAt and Validate also return
// codec.ErrInvalidSecretEncoding when the Base32 secret cannot be decoded.
//
// # See Also
//
//   - RFC 4226: HMAC-Based One-Time Password (HOTP) Algorithm
//   - RFC 6238: Time-Based One-Time Password (TOTP) Algorithm
package totp
