package availability

import (
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Status классификация номера на запрошенный период
type Status string

const (
	StatusAvailable   Status = "available"
	StatusBooked      Status = "booked"
	StatusPrebooked   Status = "prebooked"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
	StatusCleaning    Status = "cleaning"
)

// Query запрос доступности
type Query struct {
	Stay       domain.StayRange
	Guests     int
	RoomTypeID *int64 // nil - все типы
}

// RoomAvailability результат классификации одного номера
type RoomAvailability struct {
	Room     domain.Room
	RoomType *domain.RoomType
	Status   Status

	// Окно, которое определило статус (бронь или режим обслуживания)
	Since *types.Date
	Until *types.Date

	CurrentBooking *domain.Reservation
	NextBooking    *domain.Reservation
	NextFreeWindow *domain.StayRange // ближайшее свободное окно той же длины

	IsBookable bool
}

// Counts агрегаты по статусам, всегда совпадают с подсчетом по списку номеров
type Counts struct {
	Available   int
	Occupied    int
	Booked      int
	Prebooked   int
	Maintenance int
	Cleaning    int
	Total       int
}

func (c *Counts) add(status Status) {
	c.Total++
	switch status {
	case StatusAvailable:
		c.Available++
	case StatusOccupied:
		c.Occupied++
	case StatusBooked:
		c.Booked++
	case StatusPrebooked:
		c.Prebooked++
	case StatusMaintenance:
		c.Maintenance++
	case StatusCleaning:
		c.Cleaning++
	}
}

// Result результат классификации всех номеров
type Result struct {
	Rooms       []RoomAvailability // по этажу, затем по номеру
	Counts      Counts
	FilteredOut int // номера, не вмещающие запрошенное число гостей
}

// Options настройки индекса
type Options struct {
	PendingBlocks bool // бронь в статусе pending занимает номер
	LookaheadDays int  // горизонт поиска свободного окна
}
