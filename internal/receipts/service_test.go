package receipts

import (
	"context"
	stdErrors "errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
	"github.com/iceonwheels/storefront-backend/pkg/logger"
	"github.com/iceonwheels/storefront-backend/pkg/metrics"
	"github.com/iceonwheels/storefront-backend/pkg/printer"
)

type fakeChannel struct {
	connected bool
	written   []byte
	failAfter int // successful writes before failing; -1 = never fail
	writes    int
}

func (c *fakeChannel) IsConnected() bool { return c.connected }

func (c *fakeChannel) Write(_ context.Context, chunk []byte) error {
	if c.failAfter >= 0 && c.writes >= c.failAfter {
		return stdErrors.New("link dropped")
	}
	c.writes++
	c.written = append(c.written, chunk...)
	return nil
}

func (c *fakeChannel) Close() error {
	c.connected = false
	return nil
}

func newTestService(t *testing.T, channel *fakeChannel) Service {
	t.Helper()
	conn := printer.NewConnection(func(ctx context.Context) (printer.Channel, error) {
		return channel, nil
	})
	svc, err := NewService(NewEncoder(testStore()), conn, 20, metrics.NewStoreMetrics(nil), logger.New(logger.Options{
		ServiceName: "test",
		Level:       zerolog.ErrorLevel,
		Output:      io.Discard,
	}))
	require.NoError(t, err)
	return svc
}

func TestServicePrintOrder(t *testing.T) {
	channel := &fakeChannel{connected: true, failAfter: -1}
	svc := newTestService(t, channel)

	require.NoError(t, svc.Connect(context.Background()))
	require.Equal(t, printer.StateConnected, svc.State())

	require.NoError(t, svc.PrintOrder(context.Background(), testOrder()))
	expected := NewEncoder(testStore()).EncodeReceipt(testOrder())
	require.Equal(t, expected, channel.written)
}

func TestServicePrintRequiresConnection(t *testing.T) {
	channel := &fakeChannel{connected: true, failAfter: -1}
	svc := newTestService(t, channel)

	err := svc.PrintOrder(context.Background(), testOrder())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotConnected, typed.Code())
}

func TestServicePrintSurfacesTransmitFailure(t *testing.T) {
	channel := &fakeChannel{connected: true, failAfter: 2}
	svc := newTestService(t, channel)

	require.NoError(t, svc.Connect(context.Background()))
	err := svc.PrintSelfTest(context.Background())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeTransmitFailed, typed.Code())
}

func TestServiceDisconnectIdempotent(t *testing.T) {
	channel := &fakeChannel{connected: true, failAfter: -1}
	svc := newTestService(t, channel)

	require.NoError(t, svc.Connect(context.Background()))
	require.NoError(t, svc.Disconnect())
	require.NoError(t, svc.Disconnect())
	require.Equal(t, printer.StateDisconnected, svc.State())
}
