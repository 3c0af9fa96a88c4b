// Package wire provides encoding and decoding of DNS messages for UDP transport.
// It handles the DNS wire format as specified in RFC 1035: the fixed header,
// uncompressed domain names and the question section.
package wire

import (
	"fmt"
	"math"

	"github.com/haukened/mini-dns/internal/dns/common/log"
	"github.com/haukened/mini-dns/internal/dns/domain"
)

// MaxUDPMessageSize is the largest message carried over plain UDP (RFC 1035 §4.2.1).
const MaxUDPMessageSize = 512

// udpCodec implements the DNSCodec interface for standard DNS over UDP messages.
type udpCodec struct {
	logger log.Logger
}

// NewUDPCodec creates and returns a new instance of udpCodec using the provided logger.
// The logger is used for logging within the codec.
func NewUDPCodec(logger log.Logger) *udpCodec {
	return &udpCodec{
		logger: logger,
	}
}

// DecodeQuery parses the header and the QDCOUNT questions that follow it.
// Answer, authority and additional sections are ignored.
func (c *udpCodec) DecodeQuery(data []byte) (domain.Message, error) {
	hdr, err := DecodeHeader(data)
	if err != nil {
		return domain.Message{Header: peekHeader(data)}, err
	}

	c.logger.Debug(map[string]any{
		"step":   "header_read",
		"id":     hdr.ID,
		"opcode": hdr.Flags.Opcode.String(),
		"qd":     hdr.QDCount,
	}, "Read DNS query header")

	var questions []domain.Question
	off := HeaderSize
	for i := 0; i < int(hdr.QDCount); i++ {
		q, next, err := DecodeQuestion(data, off)
		if err != nil {
			return domain.Message{Header: hdr}, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, q)
		off = next
	}

	return domain.Message{Header: hdr, Questions: questions}, nil
}

// EncodeResponse writes the header followed by the question section.
// QDCOUNT is always taken from len(msg.Questions), whatever the header says.
func (c *udpCodec) EncodeResponse(msg domain.Message) ([]byte, error) {
	if len(msg.Questions) > math.MaxUint16 {
		return nil, fmt.Errorf("too many questions: %d (max %d)", len(msg.Questions), math.MaxUint16)
	}

	hdr := msg.Header
	//gosec:disable G115 -- bounds checked above
	hdr.QDCount = uint16(len(msg.Questions))

	buf := AppendHeader(make([]byte, 0, MaxUDPMessageSize), hdr)

	c.logger.Debug(map[string]any{
		"step":  "header_written",
		"id":    hdr.ID,
		"flags": fmt.Sprintf("0x%04x", hdr.Flags.Pack()),
		"rcode": hdr.Flags.RCode.String(),
		"qd":    hdr.QDCount,
	}, "Wrote DNS response header")

	for i, q := range msg.Questions {
		var err error
		buf, err = AppendQuestion(buf, q)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}

	if len(buf) > MaxUDPMessageSize {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrMessageTooLarge, len(buf), MaxUDPMessageSize)
	}

	c.logger.Debug(map[string]any{
		"step": "final_packet",
		"size": len(buf),
		"raw":  fmt.Sprintf("%x", buf),
	}, "Final encoded DNS response")

	return buf, nil
}

var _ DNSCodec = &udpCodec{}
