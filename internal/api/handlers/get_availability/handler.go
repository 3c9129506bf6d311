package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

const (
	msgInvalidParams = "некорректные параметры запроса: нужны checkIn, checkOut (YYYY-MM-DD), guests"
	msgInvalidQuery  = "некорректный запрос доступности"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?checkIn=2025-10-01&checkOut=2025-10-03&guests=2&roomTypeId=1
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /availability - Invalid query: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery+": "+err.Error())

		default:
			h.logger.Error("GET /availability - Failed to get availability: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - checkIn=%s, checkOut=%s, rooms=%d, available=%d",
		useCaseReq.CheckIn, useCaseReq.CheckOut, result.Counts.Total, result.Counts.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
