package printer

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// Channel is a chunked-write sink backed by a physical printer link.
// Transmit awaits each Write before issuing the next chunk; the link
// has no flow control the caller can observe.
type Channel interface {
	// IsConnected reports whether the link is usable.
	IsConnected() bool
	// Write sends one chunk and blocks until the link accepts it.
	Write(ctx context.Context, chunk []byte) error
	// Close releases the link. Idempotent.
	Close() error
}

// NetworkChannel is a Channel over a persistent TCP connection,
// e.g. "192.168.1.100:9100" for a LAN thermal printer.
type NetworkChannel struct {
	address        string
	connectTimeout time.Duration
	writeTimeout   time.Duration

	mu   sync.Mutex
	conn net.Conn
}

// NewNetworkChannel creates an unconnected TCP channel. Call Connect
// before writing.
func NewNetworkChannel(address string, connectTimeout, writeTimeout time.Duration) *NetworkChannel {
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}
	if writeTimeout <= 0 {
		writeTimeout = 10 * time.Second
	}
	return &NetworkChannel{
		address:        address,
		connectTimeout: connectTimeout,
		writeTimeout:   writeTimeout,
	}
}

// Connect dials the printer. A second call replaces the previous link.
func (c *NetworkChannel) Connect(ctx context.Context) error {
	if c.address == "" {
		return fmt.Errorf("printer address is required")
	}

	dialer := net.Dialer{Timeout: c.connectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.address)
	if err != nil {
		return fmt.Errorf("dialing printer %s: %w", c.address, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = conn
	return nil
}

// IsConnected reports whether a link is currently held.
func (c *NetworkChannel) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Write sends one chunk over the held link.
func (c *NetworkChannel) Write(ctx context.Context, chunk []byte) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("channel is not connected")
	}

	deadline := time.Now().Add(c.writeTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(chunk); err != nil {
		return fmt.Errorf("writing to printer %s: %w", c.address, err)
	}
	return nil
}

// Close drops the link if held.
func (c *NetworkChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// NullChannel discards everything written to it. Used when no printer
// hardware is configured so checkout flows stay exercisable.
type NullChannel struct{}

// NewNullChannel creates a channel that accepts and discards writes.
func NewNullChannel() *NullChannel {
	return &NullChannel{}
}

func (NullChannel) IsConnected() bool { return true }

func (NullChannel) Write(context.Context, []byte) error { return nil }

func (NullChannel) Close() error { return nil }

func (NullChannel) Connect(context.Context) error { return nil }
