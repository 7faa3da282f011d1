package printer

import (
	"context"
	stdErrors "errors"
	"sync"

	"github.com/iceonwheels/storefront-backend/pkg/errors"
)

// State is the connection lifecycle phase.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// FailureKind classifies why a connect attempt did not produce a link.
type FailureKind string

const (
	// FailureUnsupported means the environment cannot reach printer
	// hardware at all. Fatal until the deployment changes.
	FailureUnsupported FailureKind = "unsupported"
	// FailureInsecure means the transport refused the link for
	// security reasons. Fatal until the transport changes.
	FailureInsecure FailureKind = "insecure"
	// FailureCancelled means the operator aborted device selection.
	// A normal outcome, not an error to alert on.
	FailureCancelled FailureKind = "cancelled"
	// FailureOther covers transient link failures worth retrying.
	FailureOther FailureKind = "other"
)

// ErrCancelled is returned by Connect when the attempt was aborted by
// the caller. Callers must treat it as benign and skip alerting.
var ErrCancelled = stdErrors.New("printer: connect cancelled")

// Classify maps a connect error to its failure kind.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureOther
	case stdErrors.Is(err, ErrCancelled), stdErrors.Is(err, context.Canceled):
		return FailureCancelled
	case stdErrors.Is(err, ErrUnsupported):
		return FailureUnsupported
	case stdErrors.Is(err, ErrInsecure):
		return FailureInsecure
	default:
		return FailureOther
	}
}

// ErrUnsupported and ErrInsecure are wrapped by dialers that can
// detect the corresponding fatal condition.
var (
	ErrUnsupported = stdErrors.New("printer: hardware access unsupported in this environment")
	ErrInsecure    = stdErrors.New("printer: transport rejected as insecure")
)

// Dialer establishes a printer link.
type Dialer func(ctx context.Context) (Channel, error)

// Connection owns at most one live printer channel. Reconnecting
// replaces the previous channel. All methods are safe for concurrent
// use; overlapping Connect calls are rejected rather than serialized.
type Connection struct {
	mu      sync.Mutex
	state   State
	channel Channel
	dial    Dialer
}

// NewConnection creates a disconnected connection that uses dial to
// establish links.
func NewConnection(dial Dialer) *Connection {
	return &Connection{state: StateDisconnected, dial: dial}
}

// State returns the current lifecycle phase.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsConnected reports whether a usable channel is held.
func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateConnected && c.channel != nil && c.channel.IsConnected()
}

// Connect establishes a new channel, replacing any previous one.
// A cancelled attempt returns ErrCancelled wrapped in a typed error so
// callers can suppress alerting; all other failures carry their
// classification in the error details.
func (c *Connection) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateConnecting {
		c.mu.Unlock()
		return errors.New(errors.CodeConflict, "printer connect already in progress")
	}
	if c.dial == nil {
		c.mu.Unlock()
		return errors.New(errors.CodeInternal, "printer dialer is not configured")
	}
	prev := c.channel
	c.channel = nil
	c.state = StateConnecting
	c.mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}

	channel, err := c.dial(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = StateDisconnected
		c.mu.Unlock()

		kind := Classify(err)
		return errors.Wrap(errors.CodeConnectFailed, err, "establishing printer link").
			WithDetails(map[string]any{"kind": string(kind)})
	}

	c.mu.Lock()
	c.channel = channel
	c.state = StateConnected
	c.mu.Unlock()
	return nil
}

// Disconnect releases the channel. Idempotent.
func (c *Connection) Disconnect() error {
	c.mu.Lock()
	channel := c.channel
	c.channel = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if channel == nil {
		return nil
	}
	return channel.Close()
}

// Channel returns the held channel, or an error when disconnected.
func (c *Connection) Channel() (Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateConnected || c.channel == nil {
		return nil, errors.New(errors.CodeNotConnected, "printer is not connected")
	}
	return c.channel, nil
}
