package responder

import (
	"context"
	"net"

	"github.com/haukened/mini-dns/internal/dns/domain"
)

// DNSResponder turns decoded queries into responses. The transport handles
// all network protocol details; the responder only sees domain objects.
type DNSResponder interface {
	// HandleQuery builds the response to a successfully decoded query.
	HandleQuery(ctx context.Context, query domain.Message, clientAddr net.Addr) domain.Message

	// HandleMalformed builds the response to a datagram that failed to
	// decode. partial holds whatever header fields could be recovered.
	HandleMalformed(ctx context.Context, partial domain.Message, clientAddr net.Addr) domain.Message
}
