package wire

import (
	"fmt"

	"github.com/haukened/mini-dns/internal/dns/domain"
)

const (
	// MaxLabelLength is the longest label RFC 1035 allows.
	MaxLabelLength = 63

	// MaxNameLength is the longest name RFC 1035 allows, in wire bytes.
	MaxNameLength = 255

	// labelTypeMask selects the two bits that mark pointers (0b11) and the
	// reserved extended label types (0b01, 0b10).
	labelTypeMask = 0xC0
)

// EncodeName encodes name as length-prefixed labels followed by a zero
// byte. Compression is never used.
func EncodeName(name domain.Name) ([]byte, error) {
	return AppendName(make([]byte, 0, name.WireLength()), name)
}

// AppendName appends the wire form of name to b. On error b is returned
// unchanged along with the error.
func AppendName(b []byte, name domain.Name) ([]byte, error) {
	start := len(b)
	for _, label := range name {
		switch {
		case len(label) == 0:
			return b[:start], fmt.Errorf("%w in %q", ErrEmptyLabel, name.String())
		case len(label) > MaxLabelLength:
			return b[:start], fmt.Errorf("%w: %q is %d bytes, max %d", ErrLabelTooLong, label, len(label), MaxLabelLength)
		}
		b = append(b, byte(len(label)))
		b = append(b, label...)
	}
	b = append(b, 0)
	if n := len(b) - start; n > MaxNameLength {
		return b[:start], fmt.Errorf("%w: %d bytes, max %d", ErrNameTooLong, n, MaxNameLength)
	}
	return b, nil
}

// DecodeName reads an uncompressed name starting at off and returns its
// labels together with the offset just past the terminating zero byte.
func DecodeName(msg []byte, off int) (domain.Name, int, error) {
	var name domain.Name
	size := 0
	for {
		if off < 0 || off >= len(msg) {
			return nil, 0, fmt.Errorf("%w: no length byte at offset %d", ErrTruncatedName, off)
		}
		length := int(msg[off])
		if length&labelTypeMask != 0 {
			return nil, 0, fmt.Errorf("%w: 0x%02x at offset %d (compression is not supported)", ErrInvalidLabelLength, msg[off], off)
		}
		off++
		size += 1 + length
		if size > MaxNameLength {
			return nil, 0, fmt.Errorf("%w: more than %d bytes", ErrNameTooLong, MaxNameLength)
		}
		if length == 0 {
			return name, off, nil
		}
		if off+length > len(msg) {
			return nil, 0, fmt.Errorf("%w: label of %d bytes at offset %d, only %d remain", ErrTruncatedName, length, off-1, len(msg)-off)
		}
		name = append(name, string(msg[off:off+length]))
		off += length
	}
}
