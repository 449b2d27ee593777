package wire

import "errors"

var (
	ErrTruncatedVarint = errors.New("truncated varint")
	ErrTruncatedField  = errors.New("truncated length-delimited field")
	ErrParseAbort      = errors.New("unsupported wire type")
)
