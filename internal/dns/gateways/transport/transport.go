// Package transport provides the network side of the responder. It owns the
// socket, converts between datagrams and domain messages through a codec,
// and hands decoded queries to the service layer.
package transport

import (
	"context"

	"github.com/haukened/mini-dns/internal/dns/services/responder"
)

// ServerTransport defines the interface for DNS server transport implementations.
type ServerTransport interface {
	// Start binds the socket and begins serving requests through handler.
	// Socket setup failures are returned; errors while serving are logged.
	Start(ctx context.Context, handler responder.DNSResponder) error

	// Stop closes the socket and waits for in-flight requests to finish.
	Stop() error

	// Address returns the bound address once started, or the configured one.
	Address() string
}
