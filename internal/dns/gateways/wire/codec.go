package wire

import (
	"github.com/haukened/mini-dns/internal/dns/domain"
)

// DNSCodec converts between datagram payloads and domain messages.
type DNSCodec interface {
	// DecodeQuery parses a received datagram. When it fails, the returned
	// Message still carries every header field that could be recovered so
	// that a format error response can echo the ID and opcode.
	DecodeQuery(data []byte) (domain.Message, error)

	// EncodeResponse serializes a response header and its question section.
	EncodeResponse(msg domain.Message) ([]byte, error)
}
