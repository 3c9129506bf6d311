package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgCannotCancel       = "бронирование не может быть отменено"
	msgInvalidFee         = "некорректный штраф за отмену"
	msgStaleVersion       = "бронирование было изменено, обновите данные"
	msgInvalidCancel      = "некорректный запрос на отмену"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrReservationNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrNotCancellable):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking cannot be cancelled: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, domain.ErrInvalidFee):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid fee: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInvalidFee(w, msgInvalidFee, err)

		case errors.Is(err, domain.ErrConflictingUpdate):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Stale version: booking_id=%d", bookingID)
			handlers.RespondConflictingUpdate(w, msgStaleVersion)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidCancel+": "+err.Error())

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%d, refund=%s, type=%s",
		bookingID, handlers.Money(result.Settlement.RefundAmount), result.Settlement.RefundType)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
