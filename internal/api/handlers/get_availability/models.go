package get_availability

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/availability"
	getAvailability "github.com/m04kA/SMC-HotelBookingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// BookingSummary бронь, определившая статус номера
type BookingSummary struct {
	ID        int64      `json:"id"`
	Status    string     `json:"status"`
	CheckIn   types.Date `json:"checkIn"`
	CheckOut  types.Date `json:"checkOut"`
	GuestName string     `json:"guestName"`
}

// Window период проживания
type Window struct {
	CheckIn  types.Date `json:"checkIn"`
	CheckOut types.Date `json:"checkOut"`
}

// RoomAvailabilityResponse статус номера на запрошенный период
type RoomAvailabilityResponse struct {
	Number         string                  `json:"number"`
	Floor          int                     `json:"floor"`
	Capacity       int                     `json:"capacity"`
	ExtraBeds      int                     `json:"extraBeds"`
	RoomTypeID     *int64                  `json:"roomTypeId,omitempty"`
	RoomTypeName   string                  `json:"roomTypeName,omitempty"`
	Amenities      []string                `json:"amenities"`
	Status         string                  `json:"status"`
	Since          *types.Date             `json:"since,omitempty"`
	Until          *types.Date             `json:"until,omitempty"`
	CurrentBooking *BookingSummary         `json:"currentBooking,omitempty"`
	NextBooking    *BookingSummary         `json:"nextBooking,omitempty"`
	NextFreeWindow *Window                 `json:"nextFreeWindow,omitempty"`
	IsBookable     bool                    `json:"isBookable"`
	Quote          *handlers.QuoteResponse `json:"quote,omitempty"`
}

// CountsResponse агрегаты по статусам
type CountsResponse struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Booked      int `json:"booked"`
	Prebooked   int `json:"prebooked"`
	Maintenance int `json:"maintenance"`
	Cleaning    int `json:"cleaning"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	CheckIn     types.Date                 `json:"checkIn"`
	CheckOut    types.Date                 `json:"checkOut"`
	Nights      int                        `json:"nights"`
	Guests      int                        `json:"guests"`
	Today       types.Date                 `json:"today"`
	Rooms       []RoomAvailabilityResponse `json:"rooms"`
	Counts      CountsResponse             `json:"counts"`
	FilteredOut int                        `json:"filteredOut"`
}

// ToUseCaseRequest собирает запрос use case из query параметров
func ToUseCaseRequest(r *http.Request) (*getAvailability.Request, error) {
	checkIn, err := handlers.QueryDate(r, "checkIn")
	if err != nil {
		return nil, err
	}
	checkOut, err := handlers.QueryDate(r, "checkOut")
	if err != nil {
		return nil, err
	}

	guests := 1
	if raw := r.URL.Query().Get("guests"); raw != "" {
		guests, err = strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
	}

	roomTypeID, err := handlers.OptionalQueryInt64(r, "roomTypeId")
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     guests,
		RoomTypeID: roomTypeID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		CheckIn:  resp.Stay.CheckIn,
		CheckOut: resp.Stay.CheckOut,
		Nights:   resp.Stay.Nights(),
		Guests:   resp.Guests,
		Today:    resp.Today,
		Rooms:    make([]RoomAvailabilityResponse, 0, len(resp.Rooms)),
		Counts: CountsResponse{
			Total:       resp.Counts.Total,
			Available:   resp.Counts.Available,
			Occupied:    resp.Counts.Occupied,
			Booked:      resp.Counts.Booked,
			Prebooked:   resp.Counts.Prebooked,
			Maintenance: resp.Counts.Maintenance,
			Cleaning:    resp.Counts.Cleaning,
		},
		FilteredOut: resp.FilteredOut,
	}

	for _, item := range resp.Rooms {
		out.Rooms = append(out.Rooms, fromRoomItem(item))
	}

	return out
}

func fromRoomItem(item getAvailability.RoomItem) RoomAvailabilityResponse {
	room := item.Room
	resp := RoomAvailabilityResponse{
		Number:         room.Number,
		Floor:          room.Floor,
		Capacity:       room.Capacity,
		ExtraBeds:      room.ExtraBeds,
		RoomTypeID:     room.RoomTypeID,
		Amenities:      room.Amenities,
		Status:         string(item.Status),
		Since:          item.Since,
		Until:          item.Until,
		CurrentBooking: fromBooking(item.CurrentBooking),
		NextBooking:    fromBooking(item.NextBooking),
		IsBookable:     item.IsBookable,
		Quote:          handlers.FromQuote(item.Quote),
	}
	if resp.Amenities == nil {
		resp.Amenities = []string{}
	}
	if item.RoomType != nil {
		resp.RoomTypeName = item.RoomType.Name
	}
	if item.NextFreeWindow != nil && item.Status != availability.StatusAvailable {
		resp.NextFreeWindow = &Window{CheckIn: item.NextFreeWindow.CheckIn, CheckOut: item.NextFreeWindow.CheckOut}
	}
	return resp
}

func fromBooking(r *domain.Reservation) *BookingSummary {
	if r == nil {
		return nil
	}
	return &BookingSummary{
		ID:        r.ID,
		Status:    string(r.Status),
		CheckIn:   r.Stay.CheckIn,
		CheckOut:  r.Stay.CheckOut,
		GuestName: r.GuestName,
	}
}
