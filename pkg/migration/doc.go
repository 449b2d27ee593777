// Package migration reads and writes the bulk export format that
// authenticator apps put into "otpauth-migration://offline?data=..." QR codes.
//
// The data parameter is a base64url encoded protobuf message. Only the parts
// needed to rebuild accounts are understood:
//
//	payload:        field 1 (bytes)  repeated account record
//	account record: field 1 (bytes)  raw secret
//	                field 2 (bytes)  name
//	                field 5 (bytes)  issuer
//
// Google Authenticator writes the issuer as field 3 and the digit count as a
// varint in field 5. The decoder therefore takes field 3 as the issuer when
// field 5 did not carry one.
//
// Decoding is fail-soft. A missing or malformed envelope produces no accounts,
// a record without a secret is dropped, and an unsupported wire type stops the
// walk of the message it appears in while keeping everything read before it.
// Inspect exposes the reason a walk stopped early.
package migration
