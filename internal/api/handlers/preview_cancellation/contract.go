package preview_cancellation

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/cancel_booking"
)

type CancellationPreviewer interface {
	Preview(ctx context.Context, req *cancelBooking.Request) (*domain.CancellationSettlement, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
