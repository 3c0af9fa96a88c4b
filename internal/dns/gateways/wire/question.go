package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/haukened/mini-dns/internal/dns/domain"
)

// EncodeQuestion serializes q as its name followed by TYPE and CLASS.
func EncodeQuestion(q domain.Question) ([]byte, error) {
	return AppendQuestion(make([]byte, 0, q.Name.WireLength()+4), q)
}

// AppendQuestion appends the wire form of q to b. On error b is returned
// unchanged along with the error.
func AppendQuestion(b []byte, q domain.Question) ([]byte, error) {
	b, err := AppendName(b, q.Name)
	if err != nil {
		return b, err
	}
	b = binary.BigEndian.AppendUint16(b, uint16(q.Type))
	b = binary.BigEndian.AppendUint16(b, uint16(q.Class))
	return b, nil
}

// DecodeQuestion parses the question starting at off and returns it with
// the offset of the first byte after it.
func DecodeQuestion(msg []byte, off int) (domain.Question, int, error) {
	name, off, err := DecodeName(msg, off)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if off+4 > len(msg) {
		return domain.Question{}, 0, fmt.Errorf("%w: need 4 bytes for type and class at offset %d, have %d", ErrTruncatedQuestion, off, len(msg)-off)
	}
	q := domain.Question{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(msg[off : off+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(msg[off+2 : off+4])),
	}
	return q, off + 4, nil
}
