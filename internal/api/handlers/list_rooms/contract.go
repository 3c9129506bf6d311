package list_rooms

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/service/inventory/models"
)

type InventoryService interface {
	ListRooms(ctx context.Context) (*models.RoomListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
