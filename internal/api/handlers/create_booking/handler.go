package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRoomNotFound       = "номер не найден"
	msgServiceNotFound    = "услуга не найдена в каталоге"
	msgRoomUnavailable    = "номер занят на выбранные даты"
	msgCheckInInPast      = "дата заезда в прошлом"
	msgPaymentRequired    = "требуется предоплата"
	msgInvalidPayment     = "сумма оплаты должна быть от 0 до стоимости проживания"
	msgInvalidBooking     = "некорректные данные брони"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room=%s", req.RoomNumber)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: room=%s, error=%v", req.RoomNumber, err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrRoomUnavailable):
			h.logger.Warn("POST /bookings - Room unavailable: room=%s, checkIn=%s, checkOut=%s, error=%v",
				req.RoomNumber, req.CheckIn, req.CheckOut, err)
			handlers.RespondRoomUnavailable(w, msgRoomUnavailable, err)

		case errors.Is(err, createBooking.ErrCheckInInPast):
			h.logger.Warn("POST /bookings - Check-in in the past: room=%s, checkIn=%s", req.RoomNumber, req.CheckIn)
			handlers.RespondBadRequest(w, msgCheckInInPast)

		case errors.Is(err, createBooking.ErrPaymentRequired):
			h.logger.Warn("POST /bookings - Advance payment required: room=%s", req.RoomNumber)
			handlers.RespondBadRequest(w, msgPaymentRequired)

		case errors.Is(err, createBooking.ErrInvalidPayment):
			h.logger.Warn("POST /bookings - Invalid payment: room=%s, error=%v", req.RoomNumber, err)
			handlers.RespondBadRequest(w, msgInvalidPayment)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings - Invalid booking: room=%s, error=%v", req.RoomNumber, err)
			handlers.RespondBadRequest(w, msgInvalidBooking+": "+err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: room=%s, error=%v", req.RoomNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, room=%s, total=%s",
		result.Reservation.ID, result.Reservation.RoomNumber, handlers.Money(result.Reservation.TotalAmount))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
