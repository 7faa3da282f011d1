package printer

import (
	"bytes"
	"context"
	stdErrors "errors"
	"testing"

	"github.com/iceonwheels/storefront-backend/pkg/errors"
)

type recordingChannel struct {
	connected bool
	writes    [][]byte
	failAt    int // 1-based write index that fails; 0 = never
	closed    bool
}

func (c *recordingChannel) IsConnected() bool { return c.connected }

func (c *recordingChannel) Write(_ context.Context, chunk []byte) error {
	if c.failAt > 0 && len(c.writes)+1 == c.failAt {
		return stdErrors.New("link dropped")
	}
	copied := append([]byte{}, chunk...)
	c.writes = append(c.writes, copied)
	return nil
}

func (c *recordingChannel) Close() error {
	c.closed = true
	c.connected = false
	return nil
}

func TestTransmitSplitsIntoChunks(t *testing.T) {
	channel := &recordingChannel{connected: true}
	buf := bytes.Repeat([]byte{0xAB}, 45)

	if err := Transmit(context.Background(), channel, buf, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(channel.writes) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(channel.writes))
	}
	if len(channel.writes[0]) != 20 || len(channel.writes[1]) != 20 || len(channel.writes[2]) != 5 {
		t.Fatalf("unexpected chunk sizes: %d/%d/%d",
			len(channel.writes[0]), len(channel.writes[1]), len(channel.writes[2]))
	}

	var joined []byte
	for _, w := range channel.writes {
		joined = append(joined, w...)
	}
	if !bytes.Equal(joined, buf) {
		t.Fatal("reassembled chunks do not match the original buffer")
	}
}

func TestTransmitRequiresConnection(t *testing.T) {
	channel := &recordingChannel{connected: false}
	err := Transmit(context.Background(), channel, []byte("data"), 20)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeNotConnected {
		t.Fatalf("expected CodeNotConnected, got %v", err)
	}
}

func TestTransmitAbortsAfterFailedChunk(t *testing.T) {
	channel := &recordingChannel{connected: true, failAt: 2}
	buf := bytes.Repeat([]byte{0x01}, 60)

	err := Transmit(context.Background(), channel, buf, 20)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeTransmitFailed {
		t.Fatalf("expected CodeTransmitFailed, got %v", err)
	}
	if len(channel.writes) != 1 {
		t.Fatalf("expected transmission to stop after the failed chunk, got %d successful writes", len(channel.writes))
	}
}

func TestConnectionLifecycle(t *testing.T) {
	channel := &recordingChannel{connected: true}
	conn := NewConnection(func(ctx context.Context) (Channel, error) {
		return channel, nil
	})

	if conn.State() != StateDisconnected {
		t.Fatalf("expected initial state disconnected, got %s", conn.State())
	}
	if err := conn.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if !conn.IsConnected() {
		t.Fatal("expected connected state after connect")
	}
	if err := conn.Disconnect(); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if !channel.closed {
		t.Fatal("expected disconnect to close the channel")
	}
	if err := conn.Disconnect(); err != nil {
		t.Fatalf("disconnect must be idempotent: %v", err)
	}
}

func TestConnectReplacesPreviousChannel(t *testing.T) {
	first := &recordingChannel{connected: true}
	second := &recordingChannel{connected: true}
	channels := []Channel{first, second}
	idx := 0
	conn := NewConnection(func(ctx context.Context) (Channel, error) {
		ch := channels[idx]
		idx++
		return ch, nil
	})

	if err := conn.Connect(context.Background()); err != nil {
		t.Fatalf("first connect: %v", err)
	}
	if err := conn.Connect(context.Background()); err != nil {
		t.Fatalf("second connect: %v", err)
	}
	if !first.closed {
		t.Fatal("expected reconnect to close the previous channel")
	}
	got, err := conn.Channel()
	if err != nil {
		t.Fatalf("channel: %v", err)
	}
	if got != second {
		t.Fatal("expected the replacement channel to be held")
	}
}

func TestConnectClassifiesFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind FailureKind
	}{
		{"cancelled", ErrCancelled, FailureCancelled},
		{"ctx cancelled", context.Canceled, FailureCancelled},
		{"unsupported", ErrUnsupported, FailureUnsupported},
		{"insecure", ErrInsecure, FailureInsecure},
		{"transient", stdErrors.New("device busy"), FailureOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := NewConnection(func(ctx context.Context) (Channel, error) {
				return nil, tt.err
			})
			err := conn.Connect(context.Background())
			typed := errors.As(err)
			if typed == nil || typed.Code() != errors.CodeConnectFailed {
				t.Fatalf("expected CodeConnectFailed, got %v", err)
			}
			details, ok := typed.Details().(map[string]any)
			if !ok {
				t.Fatalf("expected details map, got %T", typed.Details())
			}
			if details["kind"] != string(tt.kind) {
				t.Fatalf("expected kind %q, got %v", tt.kind, details["kind"])
			}
			if conn.State() != StateDisconnected {
				t.Fatalf("expected disconnected after failure, got %s", conn.State())
			}
		})
	}
}

func TestChannelErrorWhenDisconnected(t *testing.T) {
	conn := NewConnection(nil)
	_, err := conn.Channel()
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeNotConnected {
		t.Fatalf("expected CodeNotConnected, got %v", err)
	}
}
