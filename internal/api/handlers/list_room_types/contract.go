package list_room_types

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/service/inventory/models"
)

type InventoryService interface {
	ListRoomTypes(ctx context.Context) (*models.RoomTypeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
