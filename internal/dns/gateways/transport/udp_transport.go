package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/haukened/mini-dns/internal/dns/common/clock"
	"github.com/haukened/mini-dns/internal/dns/common/log"
	"github.com/haukened/mini-dns/internal/dns/common/utils"
	"github.com/haukened/mini-dns/internal/dns/domain"
	"github.com/haukened/mini-dns/internal/dns/gateways/wire"
	"github.com/haukened/mini-dns/internal/dns/services/responder"
)

// DefaultMaxWorkers is used when UDPOptions.MaxWorkers is not positive.
const DefaultMaxWorkers = 64

// UDPTransport implements ServerTransport for standard DNS over UDP (RFC 1035).
// It handles UDP socket management, packet reception/transmission, and wire format
// conversion while delegating DNS logic to the service layer.
type UDPTransport struct {
	addr      string
	reusePort bool
	codec     wire.DNSCodec
	logger    log.Logger
	clock     clock.Clock

	// sem bounds concurrent packet handlers; wg tracks the listen loop and
	// every handler so Stop can wait for them.
	sem chan struct{}
	wg  sync.WaitGroup

	mu      sync.RWMutex
	conn    *net.UDPConn
	running bool
	stopCh  chan struct{}
}

// UDPOptions configures a UDPTransport.
type UDPOptions struct {
	Addr       string
	ReusePort  bool
	MaxWorkers int
	Codec      wire.DNSCodec
	Logger     log.Logger
	Clock      clock.Clock
}

// NewUDPTransport creates a new UDP transport instance.
func NewUDPTransport(opts UDPOptions) *UDPTransport {
	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = DefaultMaxWorkers
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &UDPTransport{
		addr:      opts.Addr,
		reusePort: opts.ReusePort,
		codec:     opts.Codec,
		logger:    logger,
		clock:     clk,
		sem:       make(chan struct{}, workers),
		stopCh:    make(chan struct{}),
	}
}

// Start creates and binds the UDP socket, then serves datagrams in the
// background until Stop is called or ctx is cancelled.
func (t *UDPTransport) Start(ctx context.Context, handler responder.DNSResponder) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("UDP transport already running")
	}

	udpAddr, err := net.ResolveUDPAddr("udp", t.addr)
	if err != nil {
		return fmt.Errorf("failed to resolve UDP address %s: %w", t.addr, err)
	}

	lc := net.ListenConfig{}
	if t.reusePort {
		lc.Control = reusePortControl
	}
	pc, err := lc.ListenPacket(ctx, "udp", udpAddr.String())
	if err != nil {
		return fmt.Errorf("failed to bind UDP socket on %s: %w", t.addr, err)
	}
	conn, ok := pc.(*net.UDPConn)
	if !ok {
		_ = pc.Close()
		return fmt.Errorf("unexpected packet conn type %T", pc)
	}

	t.conn = conn
	t.running = true
	t.stopCh = make(chan struct{})

	t.logger.Info(map[string]any{
		"transport":  "udp",
		"address":    conn.LocalAddr().String(),
		"reuse_port": t.reusePort,
		"workers":    cap(t.sem),
	}, "DNS transport started")

	t.wg.Add(1)
	go t.listenLoop(ctx, conn, t.stopCh, handler)
	go t.stopOnCancel(ctx, t.stopCh)

	return nil
}

// Stop gracefully shuts down the UDP transport.
func (t *UDPTransport) Stop() error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}

	close(t.stopCh)

	var closeErr error
	if t.conn != nil {
		closeErr = t.conn.Close()
		if closeErr != nil {
			t.logger.Warn(map[string]any{
				"error": closeErr.Error(),
			}, "Error closing UDP connection")
		}
	}
	t.running = false
	t.mu.Unlock()

	// Handlers never take mu, so waiting outside the lock cannot deadlock.
	t.wg.Wait()

	t.logger.Info(map[string]any{
		"transport": "udp",
		"address":   t.addr,
	}, "DNS transport stopped")

	return closeErr
}

// Address returns the bound address while running, otherwise the configured one.
func (t *UDPTransport) Address() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.running && t.conn != nil {
		return t.conn.LocalAddr().String()
	}
	return t.addr
}

// stopOnCancel stops the transport when ctx ends first.
func (t *UDPTransport) stopOnCancel(ctx context.Context, stopCh <-chan struct{}) {
	select {
	case <-ctx.Done():
		t.logger.Debug(nil, "UDP transport stopping due to context cancellation")
		_ = t.Stop()
	case <-stopCh:
	}
}

// listenLoop reads datagrams until the socket is closed.
func (t *UDPTransport) listenLoop(ctx context.Context, conn *net.UDPConn, stopCh <-chan struct{}, handler responder.DNSResponder) {
	defer t.wg.Done()

	buffer := make([]byte, wire.MaxUDPMessageSize)

	for {
		n, clientAddr, err := conn.ReadFromUDP(buffer)
		if err != nil {
			select {
			case <-stopCh:
				return // Normal shutdown
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}

			t.logger.Warn(map[string]any{
				"error": err.Error(),
			}, "Failed to read UDP packet")
			continue
		}

		packet := make([]byte, n)
		copy(packet, buffer[:n])
		t.dispatch(ctx, conn, packet, clientAddr, handler)
	}
}

// dispatch hands the packet to a worker goroutine, or handles it inline
// when every worker slot is taken.
func (t *UDPTransport) dispatch(ctx context.Context, conn *net.UDPConn, packet []byte, clientAddr *net.UDPAddr, handler responder.DNSResponder) {
	select {
	case t.sem <- struct{}{}:
		t.wg.Add(1)
		go func() {
			defer func() {
				<-t.sem
				t.wg.Done()
			}()
			t.handlePacket(ctx, conn, packet, clientAddr, handler)
		}()
	default:
		t.logger.Debug(map[string]any{
			"client":  clientAddr.String(),
			"workers": cap(t.sem),
		}, "All workers busy, handling packet inline")
		t.handlePacket(ctx, conn, packet, clientAddr, handler)
	}
}

// handlePacket runs one datagram through decode, respond, encode and send.
func (t *UDPTransport) handlePacket(ctx context.Context, conn *net.UDPConn, data []byte, clientAddr *net.UDPAddr, handler responder.DNSResponder) {
	start := t.clock.Now()

	t.logger.Debug(map[string]any{
		"client": clientAddr.String(),
		"size":   len(data),
		"raw":    fmt.Sprintf("%x", data),
	}, "Received raw DNS query data")

	var response domain.Message
	query, err := t.codec.DecodeQuery(data)
	if err != nil {
		t.logger.Warn(map[string]any{
			"client":   clientAddr.String(),
			"query_id": query.Header.ID,
			"error":    err.Error(),
			"size":     len(data),
		}, "Failed to decode DNS query")
		response = handler.HandleMalformed(ctx, query, clientAddr)
	} else {
		fields := map[string]any{
			"client":    clientAddr.String(),
			"query_id":  query.Header.ID,
			"opcode":    query.Header.Flags.Opcode.String(),
			"questions": len(query.Questions),
		}
		if q, ok := query.FirstQuestion(); ok {
			fields["name"] = q.Name.String()
			fields["type"] = q.Type.String()
			fields["zone"] = utils.GetApexDomain(q.Name.String())
		}
		t.logger.Debug(fields, "Received DNS query")
		response = handler.HandleQuery(ctx, query, clientAddr)
	}

	responseData, err := t.codec.EncodeResponse(response)
	if err != nil {
		t.logger.Error(map[string]any{
			"client":   clientAddr.String(),
			"query_id": response.Header.ID,
			"error":    err.Error(),
		}, "Failed to encode DNS response")
		return
	}

	_, err = conn.WriteToUDP(responseData, clientAddr)
	if err != nil {
		t.logger.Error(map[string]any{
			"client":   clientAddr.String(),
			"query_id": response.Header.ID,
			"error":    err.Error(),
		}, "Failed to send DNS response")
		return
	}

	t.logger.Debug(map[string]any{
		"client":   clientAddr.String(),
		"query_id": response.Header.ID,
		"rcode":    response.Header.Flags.RCode.String(),
		"size":     len(responseData),
		"duration": clock.Since(t.clock, start).String(),
	}, "Sent DNS response")
}

var _ ServerTransport = (*UDPTransport)(nil)
