// Package wire is a minimal cursor over protobuf-encoded bytes.
//
// It understands exactly two wire types: varint (0) and length-delimited (2).
// That is all the authenticator migration format needs; any other wire type
// is reported as ErrParseAbort so that callers can stop walking the message
// they are in. The heavy lifting of varint decoding is delegated to
// google.golang.org/protobuf/encoding/protowire.
//
// All functions take the buffer and a byte offset and return the new offset.
// The buffer is never copied: length-delimited values are returned as
// sub-slices of the input.
package wire
