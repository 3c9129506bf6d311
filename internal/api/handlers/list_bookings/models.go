package list_bookings

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтр из query параметров
func ToServiceRequest(r *http.Request) (*models.ListRequest, error) {
	query := r.URL.Query()
	req := &models.ListRequest{}

	if room := query.Get("roomNumber"); room != "" {
		req.RoomNumber = &room
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	var err error
	if req.From, err = handlers.OptionalQueryDate(r, "from"); err != nil {
		return nil, err
	}
	if req.To, err = handlers.OptionalQueryDate(r, "to"); err != nil {
		return nil, err
	}
	if req.IncludeCancelled, err = handlers.OptionalQueryBool(r, "includeCancelled"); err != nil {
		return nil, err
	}
	if req.Limit, err = queryInt(r, "limit"); err != nil {
		return nil, err
	}
	if req.Offset, err = queryInt(r, "offset"); err != nil {
		return nil, err
	}

	return req, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, raw)
	}
	return value, nil
}
