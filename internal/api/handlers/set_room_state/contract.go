package set_room_state

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/service/inventory/models"
)

type InventoryService interface {
	SetRoomState(ctx context.Context, roomNumber string, req *models.SetRoomStateRequest) (*models.RoomResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
