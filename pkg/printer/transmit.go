package printer

import (
	"context"

	"github.com/iceonwheels/storefront-backend/pkg/errors"
)

// DefaultChunkSize is the largest payload the printer link accepts per
// write. Protocol-imposed, not tunable for throughput.
const DefaultChunkSize = 20

// Transmit writes buf to the channel in chunkSize pieces, awaiting
// each write before issuing the next. A failed write aborts the
// remaining chunks; bytes already written may have reached the device,
// which is accepted as a garbled printout rather than rolled back.
func Transmit(ctx context.Context, channel Channel, buf []byte, chunkSize int) error {
	if channel == nil || !channel.IsConnected() {
		return errors.New(errors.CodeNotConnected, "printer is not connected")
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	for offset := 0; offset < len(buf); offset += chunkSize {
		end := offset + chunkSize
		if end > len(buf) {
			end = len(buf)
		}
		if err := channel.Write(ctx, buf[offset:end]); err != nil {
			return errors.Wrap(errors.CodeTransmitFailed, err, "writing receipt chunk").
				WithDetails(map[string]any{
					"offset": offset,
					"total":  len(buf),
				})
		}
	}
	return nil
}
