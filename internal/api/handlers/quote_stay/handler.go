package quote_stay

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	quoteStay "github.com/m04kA/SMC-HotelBookingService/internal/usecase/quote_stay"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRoomNotFound       = "номер не найден"
	msgServiceNotFound    = "услуга не найдена в каталоге"
	msgInvalidQuote       = "некорректные параметры расчета"
)

type Handler struct {
	useCase QuoteStayUseCase
	logger  Logger
}

func NewHandler(useCase QuoteStayUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, quoteStay.ErrRoomNotFound):
			h.logger.Warn("POST /quotes - Room not found: room=%s", req.RoomNumber)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, quoteStay.ErrServiceNotFound):
			h.logger.Warn("POST /quotes - Service not found: room=%s, error=%v", req.RoomNumber, err)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /quotes - Invalid quote: room=%s, error=%v", req.RoomNumber, err)
			handlers.RespondBadRequest(w, msgInvalidQuote+": "+err.Error())

		default:
			h.logger.Error("POST /quotes - Failed to quote stay: room=%s, error=%v", req.RoomNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - room=%s, nights=%d, total=%s",
		req.RoomNumber, result.Quote.Nights, handlers.Money(result.Quote.Total))
	handlers.RespondJSON(w, http.StatusOK, handlers.FromQuote(result.Quote))
}
