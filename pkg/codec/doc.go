// Package codec converts TOTP secrets and migration envelopes between their
// textual and binary forms.
//
// Secrets are Base32 (RFC 4648) text. Input is accepted case-insensitively,
// with or without padding and with spaces between groups, the way people copy
// them out of provisioning pages. The canonical stored form produced by
// EncodeBase32 and NormalizeBase32 is upper-case without padding.
//
// Migration envelopes carry a base64url string in their "data" parameter.
// DecodeBase64URL restores the missing padding before decoding and also
// tolerates the standard alphabet characters '+' and '/', which some exporters
// emit.
//
// # Error Handling
//
// Failures are reported through the sentinels ErrInvalidSecretEncoding and
// ErrInvalidEnvelope, joined with the underlying decoder error when there is
// one. Use errors.Is to inspect them.
package codec
