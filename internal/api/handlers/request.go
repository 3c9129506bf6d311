package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Максимальный размер тела запроса
const maxBodyBytes = 1 << 20

// ErrEmptyBody тело запроса пустое
var ErrEmptyBody = errors.New("request body is empty")

// DecodeJSON читает тело запроса в v, неизвестные поля - ошибка
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// PathInt64 положительное целое из переменной пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return value, nil
}

// QueryDate обязательная дата YYYY-MM-DD из query
func QueryDate(r *http.Request, name string) (types.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return types.Date{}, fmt.Errorf("%s is required", name)
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return types.Date{}, fmt.Errorf("%s must be %s: %v", name, domain.DateFormat, err)
	}
	return d, nil
}

// OptionalQueryDate дата из query, nil если параметра нет
func OptionalQueryDate(r *http.Request, name string) (*types.Date, error) {
	if r.URL.Query().Get(name) == "" {
		return nil, nil
	}
	d, err := QueryDate(r, name)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// OptionalQueryInt64 целое из query, nil если параметра нет
func OptionalQueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return &value, nil
}

// OptionalQueryBool флаг из query, false если параметра нет
func OptionalQueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", name, raw)
	}
	return value, nil
}
