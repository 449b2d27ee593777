package wire

import "google.golang.org/protobuf/encoding/protowire"

// Reader walks the fields of a single message.
//
//	r := wire.NewReader(msg)
//	for !r.Done() {
//		num, typ, err := r.Next()
//		...
//	}
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Done reports whether the whole message has been consumed.
func (r *Reader) Done() bool {
	return r.pos >= len(r.buf)
}

// Pos returns the current offset.
func (r *Reader) Pos() int {
	return r.pos
}

// Next reads the next field tag.
func (r *Reader) Next() (protowire.Number, protowire.Type, error) {
	num, typ, next, err := ReadTag(r.buf, r.pos)
	if err != nil {
		return 0, 0, err
	}
	r.pos = next
	return num, typ, nil
}

// Varint reads a varint value.
func (r *Reader) Varint() (uint64, error) {
	v, next, err := ReadVarint(r.buf, r.pos)
	if err != nil {
		return 0, err
	}
	r.pos = next
	return v, nil
}

// Bytes reads a length-delimited value.
func (r *Reader) Bytes() ([]byte, error) {
	v, next, err := ReadLengthDelimited(r.buf, r.pos)
	if err != nil {
		return nil, err
	}
	r.pos = next
	return v, nil
}

// Skip skips the value of the current field. On error the cursor is left
// where it was.
func (r *Reader) Skip(typ protowire.Type) error {
	next, err := SkipField(r.buf, r.pos, typ)
	if err != nil {
		return err
	}
	r.pos = next
	return nil
}
