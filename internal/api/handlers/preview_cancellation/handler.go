package preview_cancellation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	cancelBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidParams    = "некорректные параметры предпросмотра"
	msgNotFound         = "бронирование не найдено"
	msgCannotCancel     = "бронирование не может быть отменено"
	msgInvalidFee       = "некорректный штраф за отмену"
)

type Handler struct {
	useCase CancellationPreviewer
	logger  Logger
}

func NewHandler(useCase CancellationPreviewer, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/cancellation-preview?reason=guest_request&fee=500
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/cancellation-preview - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(r, bookingID)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/cancellation-preview - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams+": "+err.Error())
		return
	}

	settlement, err := h.useCase.Preview(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrReservationNotFound):
			h.logger.Warn("GET /bookings/{id}/cancellation-preview - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrNotCancellable):
			h.logger.Warn("GET /bookings/{id}/cancellation-preview - Booking cannot be cancelled: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, domain.ErrInvalidFee):
			h.logger.Warn("GET /bookings/{id}/cancellation-preview - Invalid fee: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInvalidFee(w, msgInvalidFee, err)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /bookings/{id}/cancellation-preview - Invalid request: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidParams+": "+err.Error())

		default:
			h.logger.Error("GET /bookings/{id}/cancellation-preview - Failed to preview: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/cancellation-preview - booking_id=%d, fee=%s, refund=%s",
		bookingID, handlers.Money(settlement.CancellationFee), handlers.Money(settlement.RefundAmount))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSettlement(settlement))
}
