package receipts

import (
	"context"
	"fmt"

	"github.com/iceonwheels/storefront-backend/pkg/db/models"
	pkgerrors "github.com/iceonwheels/storefront-backend/pkg/errors"
	"github.com/iceonwheels/storefront-backend/pkg/logger"
	"github.com/iceonwheels/storefront-backend/pkg/metrics"
	"github.com/iceonwheels/storefront-backend/pkg/printer"
)

// Service owns the printer connection lifecycle and receipt printing.
type Service interface {
	Connect(ctx context.Context) error
	Disconnect() error
	State() printer.State
	PrintOrder(ctx context.Context, order *models.Order) error
	PrintSelfTest(ctx context.Context) error
}

type service struct {
	encoder   *Encoder
	conn      *printer.Connection
	chunkSize int
	metrics   *metrics.StoreMetrics
	logg      *logger.Logger
}

// NewService wires the encoder to a caller-owned printer connection.
func NewService(encoder *Encoder, conn *printer.Connection, chunkSize int, m *metrics.StoreMetrics, logg *logger.Logger) (Service, error) {
	if encoder == nil {
		return nil, fmt.Errorf("receipt encoder required")
	}
	if conn == nil {
		return nil, fmt.Errorf("printer connection required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if chunkSize <= 0 {
		chunkSize = printer.DefaultChunkSize
	}
	return &service{
		encoder:   encoder,
		conn:      conn,
		chunkSize: chunkSize,
		metrics:   m,
		logg:      logg,
	}, nil
}

// Connect establishes the printer link. A cancelled device selection
// is reported as a classified failure the caller can suppress.
func (s *service) Connect(ctx context.Context) error {
	if err := s.conn.Connect(ctx); err != nil {
		if printer.Classify(errCause(err)) != printer.FailureCancelled {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "printer connect failed")
		}
		return err
	}
	s.logg.Info(ctx, "printer connected")
	return nil
}

// Disconnect releases the printer link. Idempotent.
func (s *service) Disconnect() error {
	return s.conn.Disconnect()
}

// State reports the connection lifecycle phase.
func (s *service) State() printer.State {
	return s.conn.State()
}

// PrintOrder encodes and transmits the order receipt. The order must
// be finalized; printing failures never affect order state.
func (s *service) PrintOrder(ctx context.Context, order *models.Order) error {
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}
	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	if err := s.transmit(ctx, s.encoder.EncodeReceipt(order)); err != nil {
		return err
	}
	s.logg.Info(ctx, "receipt printed")
	return nil
}

// PrintSelfTest transmits a short connectivity test payload.
func (s *service) PrintSelfTest(ctx context.Context) error {
	if err := s.transmit(ctx, s.encoder.EncodeSelfTest()); err != nil {
		return err
	}
	s.logg.Info(ctx, "printer self-test sent")
	return nil
}

func (s *service) transmit(ctx context.Context, buf []byte) error {
	channel, err := s.conn.Channel()
	if err != nil {
		return err
	}
	if err := printer.Transmit(ctx, channel, buf, s.chunkSize); err != nil {
		s.metrics.IncTransmitFailure()
		return err
	}
	s.metrics.IncReceiptPrinted()
	return nil
}

func errCause(err error) error {
	if typed := pkgerrors.As(err); typed != nil && typed.Unwrap() != nil {
		return typed.Unwrap()
	}
	return err
}
