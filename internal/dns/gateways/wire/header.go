package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/mini-dns/internal/dns/domain"
)

// HeaderSize is the fixed size of a DNS header in bytes.
const HeaderSize = 12

// EncodeHeader serializes h into its 12-byte wire form.
func EncodeHeader(h domain.Header) []byte {
	return AppendHeader(make([]byte, 0, HeaderSize), h)
}

// AppendHeader appends the wire form of h to b. Fields are written in
// RFC 1035 order, each as a big-endian uint16.
func AppendHeader(b []byte, h domain.Header) []byte {
	b = binary.BigEndian.AppendUint16(b, h.ID)
	b = binary.BigEndian.AppendUint16(b, h.Flags.Pack())
	b = binary.BigEndian.AppendUint16(b, h.QDCount)
	b = binary.BigEndian.AppendUint16(b, h.ANCount)
	b = binary.BigEndian.AppendUint16(b, h.NSCount)
	b = binary.BigEndian.AppendUint16(b, h.ARCount)
	return b
}

// DecodeHeader parses the header at the start of msg.
func DecodeHeader(msg []byte) (domain.Header, error) {
	if len(msg) < HeaderSize {
		return domain.Header{}, fmt.Errorf("%w: got %d bytes, need %d", ErrMalformedHeader, len(msg), HeaderSize)
	}
	return domain.Header{
		ID:      binary.BigEndian.Uint16(msg[0:2]),
		Flags:   domain.UnpackFlags(binary.BigEndian.Uint16(msg[2:4])),
		QDCount: binary.BigEndian.Uint16(msg[4:6]),
		ANCount: binary.BigEndian.Uint16(msg[6:8]),
		NSCount: binary.BigEndian.Uint16(msg[8:10]),
		ARCount: binary.BigEndian.Uint16(msg[10:12]),
	}, nil
}

// peekHeader recovers whatever header fields a short message still holds:
// the ID from two bytes, the flags from four. Everything else stays zero.
func peekHeader(msg []byte) domain.Header {
	var h domain.Header
	if len(msg) >= 2 {
		h.ID = binary.BigEndian.Uint16(msg[0:2])
	}
	if len(msg) >= 4 {
		h.Flags = domain.UnpackFlags(binary.BigEndian.Uint16(msg[2:4]))
	}
	return h
}
