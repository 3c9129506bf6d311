package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// Коды ошибок в теле ответа
const (
	CodeValidation       = "validation_error"
	CodeInvalidFee       = "invalid_fee"
	CodeNotFound         = "not_found"
	CodeRoomUnavailable  = "room_unavailable"
	CodeConflictingWrite = "conflicting_update"
	CodeInternal         = "internal_error"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ConflictDetails что занимает номер на запрошенный период
type ConflictDetails struct {
	RoomNumber    string  `json:"roomNumber"`
	ReservationID *int64  `json:"reservationId,omitempty"`
	Status        string  `json:"status,omitempty"`
	State         string  `json:"state,omitempty"`
	CheckIn       *string `json:"checkIn,omitempty"`
	CheckOut      *string `json:"checkOut,omitempty"`
}

// RespondJSON пишет data как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку с кодом, выведенным из HTTP статуса
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondErrorWithDetails(w, status, codeForStatus(status), message, nil)
}

// RespondErrorWithDetails пишет ошибку с явным кодом и деталями
func RespondErrorWithDetails(w http.ResponseWriter, status int, code, message string, details interface{}) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message, Details: details})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondInvalidFee 400 с нарушенной границей штрафа
func RespondInvalidFee(w http.ResponseWriter, message string, err error) {
	var details interface{}
	if feeErr, ok := asFeeError(err); ok {
		details = map[string]string{
			"fee":   feeErr.Fee.String(),
			"bound": feeErr.Bound.String(),
		}
	}
	RespondErrorWithDetails(w, http.StatusBadRequest, CodeInvalidFee, message, details)
}

// RespondRoomUnavailable 409 с окном, которое мешает брони
func RespondRoomUnavailable(w http.ResponseWriter, message string, err error) {
	var details interface{}
	if conflict, ok := domain.AsConflictError(err); ok {
		details = NewConflictDetails(conflict)
	}
	RespondErrorWithDetails(w, http.StatusConflict, CodeRoomUnavailable, message, details)
}

// RespondConflictingUpdate 409 при конкурентном изменении записи
func RespondConflictingUpdate(w http.ResponseWriter, message string) {
	RespondErrorWithDetails(w, http.StatusConflict, CodeConflictingWrite, message, nil)
}

// NewConflictDetails конвертирует ошибку конфликта в DTO
func NewConflictDetails(c *domain.ConflictError) ConflictDetails {
	details := ConflictDetails{RoomNumber: c.RoomNumber}
	if c.ReservationID != 0 {
		id := c.ReservationID
		details.ReservationID = &id
		details.Status = string(c.Status)
	} else {
		details.State = string(c.State)
	}
	if !c.Stay.CheckIn.IsZero() {
		in := c.Stay.CheckIn.String()
		details.CheckIn = &in
	}
	if !c.Stay.CheckOut.IsZero() {
		out := c.Stay.CheckOut.String()
		details.CheckOut = &out
	}
	return details
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeRoomUnavailable
	default:
		return CodeInternal
	}
}
