package cancel_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	cancelBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/cancel_booking"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
)

type MockCancelBookingUseCase struct {
	mock.Mock
}

func (m *MockCancelBookingUseCase) Execute(ctx context.Context, req *cancelBooking.Request) (*cancelBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cancelBooking.Response), args.Error(1)
}

func serve(uc *MockCancelBookingUseCase, id, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(uc, logger.Discard()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/cancel", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	uc := new(MockCancelBookingUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *cancelBooking.Request) bool {
		return req.ReservationID == 5 &&
			req.Reason == domain.ReasonChangeOfPlans &&
			req.Fee != nil && req.Fee.Equal(decimal.NewFromInt(300)) &&
			req.Version != nil && *req.Version == 2
	})).Return(&cancelBooking.Response{
		Reservation: &domain.Reservation{ID: 5, Status: domain.StatusCancelled},
		Settlement: &domain.CancellationSettlement{
			ReservationID:   5,
			OriginalAmount:  decimal.NewFromInt(3000),
			CancellationFee: decimal.NewFromInt(300),
			RefundAmount:    decimal.NewFromInt(2700),
			RefundType:      domain.RefundPartial,
			Reason:          domain.ReasonChangeOfPlans,
		},
	}, nil)

	rec := serve(uc, "5", `{"reason": "change_of_plans", "fee": 300, "version": 2}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Reservation struct {
			Status string `json:"status"`
		} `json:"reservation"`
		Settlement struct {
			RefundAmount string `json:"refundAmount"`
			RefundType   string `json:"refundType"`
		} `json:"settlement"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Reservation.Status)
	assert.Equal(t, "2700.00", resp.Settlement.RefundAmount)
	assert.Equal(t, "Partial Refund", resp.Settlement.RefundType)
}

func TestHandle_InvalidFeeCarriesBound(t *testing.T) {
	uc := new(MockCancelBookingUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, &domain.FeeError{Fee: decimal.NewFromInt(-10), Bound: decimal.Zero})

	rec := serve(uc, "5", `{"reason": "guest_request", "fee": -10}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, handlers.CodeInvalidFee, resp.Code)
	assert.Equal(t, "-10", resp.Details["fee"])
	assert.Equal(t, "0", resp.Details["bound"])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "bad id", id: "abc", wantStatus: http.StatusBadRequest, wantCode: handlers.CodeValidation},
		{name: "not found", id: "5", err: cancelBooking.ErrReservationNotFound, wantStatus: http.StatusNotFound, wantCode: handlers.CodeNotFound},
		{name: "not cancellable", id: "5", err: cancelBooking.ErrNotCancellable, wantStatus: http.StatusBadRequest, wantCode: handlers.CodeValidation},
		{name: "stale version", id: "5", err: cancelBooking.ErrStaleVersion, wantStatus: http.StatusConflict, wantCode: handlers.CodeConflictingWrite},
		{name: "internal", id: "5", err: fmt.Errorf("%w: db down", cancelBooking.ErrInternal), wantStatus: http.StatusInternalServerError, wantCode: handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockCancelBookingUseCase)
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := serve(uc, tt.id, `{"reason": "guest_request"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}
