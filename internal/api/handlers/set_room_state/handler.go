package set_room_state

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/inventory"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/inventory/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRoomNotFound       = "номер не найден"
	msgInvalidState       = "некорректное состояние номера"
)

type Handler struct {
	service InventoryService
	logger  Logger
}

func NewHandler(service InventoryService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/rooms/{roomNumber}/state
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomNumber := mux.Vars(r)["roomNumber"]

	var req models.SetRoomStateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /rooms/{number}/state - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	room, err := h.service.SetRoomState(r.Context(), roomNumber, &req)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrRoomNotFound):
			h.logger.Warn("PUT /rooms/{number}/state - Room not found: room=%s", roomNumber)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, inventory.ErrInvalidInput):
			h.logger.Warn("PUT /rooms/{number}/state - Invalid state: room=%s, error=%v", roomNumber, err)
			handlers.RespondBadRequest(w, msgInvalidState+": "+err.Error())

		default:
			h.logger.Error("PUT /rooms/{number}/state - Failed to set state: room=%s, error=%v", roomNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /rooms/{number}/state - Room state updated: room=%s, state=%s", roomNumber, room.State)
	handlers.RespondJSON(w, http.StatusOK, room)
}
