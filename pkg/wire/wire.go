package wire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ReadVarint reads a base-128 varint starting at pos.
func ReadVarint(buf []byte, pos int) (uint64, int, error) {
	if pos < 0 || pos >= len(buf) {
		return 0, pos, ErrTruncatedVarint
	}

	v, n := protowire.ConsumeVarint(buf[pos:])
	if n < 0 {
		return 0, pos, errors.Join(ErrTruncatedVarint, protowire.ParseError(n))
	}

	return v, pos + n, nil
}

// ReadLengthDelimited reads a varint length at pos followed by that many
// bytes. The returned slice aliases buf and has its capacity clipped.
func ReadLengthDelimited(buf []byte, pos int) ([]byte, int, error) {
	size, next, err := ReadVarint(buf, pos)
	if err != nil {
		return nil, pos, err
	}

	if size > uint64(len(buf)-next) {
		return nil, pos, fmt.Errorf("%w: want %d bytes, have %d", ErrTruncatedField, size, len(buf)-next)
	}

	end := next + int(size)
	return buf[next:end:end], end, nil
}

// ReadTag reads a field tag and splits it into field number and wire type.
func ReadTag(buf []byte, pos int) (protowire.Number, protowire.Type, int, error) {
	tag, next, err := ReadVarint(buf, pos)
	if err != nil {
		return 0, 0, pos, err
	}

	return protowire.Number(tag >> 3), protowire.Type(tag & 0x7), next, nil
}

// SkipField advances past the value of a field whose tag has already been
// read. Only varint and length-delimited values can be skipped; every other
// wire type yields ErrParseAbort.
func SkipField(buf []byte, pos int, typ protowire.Type) (int, error) {
	switch typ {
	case protowire.VarintType:
		_, next, err := ReadVarint(buf, pos)
		return next, err
	case protowire.BytesType:
		_, next, err := ReadLengthDelimited(buf, pos)
		return next, err
	default:
		return pos, fmt.Errorf("%w: %d", ErrParseAbort, typ)
	}
}
