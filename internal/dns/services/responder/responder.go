// Package responder holds the response construction policy. It performs no
// resolution: every response echoes the query's ID, opcode and questions
// and carries no records.
package responder

import (
	"context"
	"net"
	"slices"

	"github.com/haukened/mini-dns/internal/dns/common/log"
	"github.com/haukened/mini-dns/internal/dns/domain"
)

// Responder implements DNSResponder. It is stateless and safe for
// concurrent use.
type Responder struct {
	logger log.Logger
}

type Options struct {
	Logger log.Logger
}

func NewResponder(opts Options) *Responder {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Responder{logger: logger}
}

// HandleQuery answers a decoded query with a header-only response that
// echoes the question section.
func (r *Responder) HandleQuery(_ context.Context, query domain.Message, clientAddr net.Addr) domain.Message {
	resp := BuildResponse(query.Header, query.Questions)

	if resp.Header.Flags.RCode != domain.RCodeNoError {
		r.logger.Debug(map[string]any{
			"client":   addrString(clientAddr),
			"query_id": query.Header.ID,
			"opcode":   query.Header.Flags.Opcode.String(),
			"rcode":    resp.Header.Flags.RCode.String(),
		}, "Refusing unsupported opcode")
	}
	if query.Header.IsResponse() {
		r.logger.Debug(map[string]any{
			"client":   addrString(clientAddr),
			"query_id": query.Header.ID,
		}, "Query has QR set, answering anyway")
	}

	return resp
}

// HandleMalformed answers a datagram that could not be decoded with FORMERR.
func (r *Responder) HandleMalformed(_ context.Context, partial domain.Message, clientAddr net.Addr) domain.Message {
	r.logger.Debug(map[string]any{
		"client":   addrString(clientAddr),
		"query_id": partial.Header.ID,
	}, "Answering malformed query with FORMERR")

	return BuildFormatError(partial.Header)
}

// ResponseFlags returns the flags of a response to a query with the given
// opcode: QR set, opcode echoed, AA/TC/RD/RA/Z clear, and NOTIMP for any
// opcode other than QUERY.
func ResponseFlags(opcode domain.Opcode) domain.Flags {
	rcode := domain.RCodeNoError
	if opcode != domain.OpcodeQuery {
		rcode = domain.RCodeNotImp
	}
	return domain.Flags{
		QR:     true,
		Opcode: opcode,
		RCode:  rcode,
	}
}

// BuildResponse constructs the response to query. The ID is copied
// verbatim and QDCOUNT matches the echoed questions.
func BuildResponse(query domain.Header, questions []domain.Question) domain.Message {
	echoed := slices.Clone(questions)
	return domain.Message{
		Header: domain.Header{
			ID:      query.ID,
			Flags:   ResponseFlags(query.Flags.Opcode),
			QDCount: clampCount(len(echoed)),
		},
		Questions: echoed,
	}
}

// BuildFormatError constructs a FORMERR response with no questions,
// echoing the ID and opcode of the partially decoded query.
func BuildFormatError(query domain.Header) domain.Message {
	return domain.Message{
		Header: domain.Header{
			ID: query.ID,
			Flags: domain.Flags{
				QR:     true,
				Opcode: query.Flags.Opcode,
				RCode:  domain.RCodeFormErr,
			},
		},
	}
}

func clampCount(n int) uint16 {
	if n > 0xFFFF {
		return 0xFFFF
	}
	//gosec:disable G115 -- bounds checked above
	return uint16(n)
}

func addrString(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	return addr.String()
}

var _ DNSResponder = (*Responder)(nil)
