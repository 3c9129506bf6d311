package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) LockRoom(ctx context.Context, roomNumber string) error {
	args := m.Called(ctx, roomNumber)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByRoom(ctx context.Context, roomNumber string, stay domain.StayRange, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	args := m.Called(ctx, roomNumber, stay, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id, expectedVersion int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	args := m.Called(ctx, id, expectedVersion, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetSettlement(ctx context.Context, reservationID int64) (*domain.CancellationSettlement, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CancellationSettlement), args.Error(1)
}

// inlineTx выполняет функцию без настоящей транзакции
type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newService(repo *MockReservationRepository, pendingBlocks bool, today string) *Service {
	svc := NewService(repo, inlineTx{}, pendingBlocks, time.UTC, logger.Discard())
	svc.timeProvider = fixedTime{now: types.MustParseDate(today).Time().Add(12 * time.Hour)}
	return svc
}

func reservationOf(id int64, room, in, out string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:         id,
		RoomNumber: room,
		Stay: domain.StayRange{
			CheckIn:  types.MustParseDate(in),
			CheckOut: types.MustParseDate(out),
		},
		Adults:      2,
		Status:      status,
		TotalAmount: decimal.RequireFromString("4000"),
		PaidAmount:  decimal.Zero,
		Version:     1,
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("GetByID", mock.Anything, int64(5)).Return(nil, reservationRepo.ErrReservationNotFound)

	_, err := newService(repo, true, "2025-09-01").GetByID(context.Background(), 5)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetByID_FormatsMoney(t *testing.T) {
	repo := new(MockReservationRepository)
	res := reservationOf(1, "101", "2025-09-10", "2025-09-12", domain.StatusConfirmed)
	res.NightlyRate = decimal.RequireFromString("2000")
	repo.On("GetByID", mock.Anything, int64(1)).Return(res, nil)

	resp, err := newService(repo, true, "2025-09-01").GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "4000.00", resp.TotalAmount)
	assert.Equal(t, "2000.00", resp.NightlyRate)
	assert.Equal(t, 2, resp.Nights)
}

func TestList_InvalidStatus(t *testing.T) {
	repo := new(MockReservationRepository)

	_, err := newService(repo, true, "2025-09-01").List(context.Background(), &models.ListRequest{Status: ptr.Ptr("archived")})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestList_PassesFilter(t *testing.T) {
	repo := new(MockReservationRepository)
	from := types.MustParseDate("2025-09-01")
	to := types.MustParseDate("2025-09-30")

	repo.On("List", mock.Anything, domain.ReservationFilter{
		RoomNumber: ptr.Ptr("101"),
		From:       &from,
		To:         &to,
		Status:     ptr.Ptr(domain.StatusConfirmed),
	}).Return([]*domain.Reservation{reservationOf(1, "101", "2025-09-10", "2025-09-12", domain.StatusConfirmed)}, nil)

	resp, err := newService(repo, true, "2025-09-01").List(context.Background(), &models.ListRequest{
		RoomNumber: ptr.Ptr("101"),
		From:       &from,
		To:         &to,
		Status:     ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)
	repo.AssertExpectations(t)
}

func TestUpdateStatus_CheckInBeforeDateRejected(t *testing.T) {
	repo := new(MockReservationRepository)
	res := reservationOf(1, "101", "2025-09-10", "2025-09-12", domain.StatusConfirmed)
	repo.On("GetByID", mock.Anything, int64(1)).Return(res, nil)
	repo.On("LockRoom", mock.Anything, "101").Return(nil)

	_, err := newService(repo, true, "2025-09-09").UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "checked_in"})

	assert.ErrorIs(t, err, domain.ErrValidation)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_CheckInOnArrivalDay(t *testing.T) {
	repo := new(MockReservationRepository)
	res := reservationOf(1, "101", "2025-09-10", "2025-09-12", domain.StatusConfirmed)
	updated := *res
	updated.Status = domain.StatusCheckedIn
	updated.Version = 2

	repo.On("GetByID", mock.Anything, int64(1)).Return(res, nil)
	repo.On("LockRoom", mock.Anything, "101").Return(nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), int64(1), domain.StatusCheckedIn).Return(&updated, nil)

	resp, err := newService(repo, true, "2025-09-10").UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "checked_in"})
	require.NoError(t, err)

	assert.Equal(t, "checked_in", resp.Status)
	assert.Equal(t, int64(2), resp.Version)
}

func TestUpdateStatus_ConfirmAdvisoryPendingChecksConflicts(t *testing.T) {
	repo := new(MockReservationRepository)
	pending := reservationOf(1, "101", "2025-09-10", "2025-09-12", domain.StatusPending)
	holder := reservationOf(2, "101", "2025-09-11", "2025-09-13", domain.StatusConfirmed)

	repo.On("GetByID", mock.Anything, int64(1)).Return(pending, nil)
	repo.On("LockRoom", mock.Anything, "101").Return(nil)
	repo.On("ListByRoom", mock.Anything, "101", pending.Stay, domain.BlockingStatuses(false)).
		Return([]*domain.Reservation{holder}, nil)

	_, err := newService(repo, false, "2025-09-01").UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})

	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
	conflict, ok := domain.AsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, int64(2), conflict.ReservationID)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_ConfirmOverlapReportsCommittedHolder(t *testing.T) {
	repo := new(MockReservationRepository)
	pending := reservationOf(1, "101", "2025-09-10", "2025-09-12", domain.StatusPending)
	holder := reservationOf(2, "101", "2025-09-11", "2025-09-13", domain.StatusConfirmed)

	repo.On("GetByID", mock.Anything, int64(1)).Return(pending, nil)
	repo.On("LockRoom", mock.Anything, "101").Return(nil)
	// Внутри транзакции бронь соседа еще не видна
	repo.On("ListByRoom", mock.Anything, "101", pending.Stay, domain.BlockingStatuses(false)).
		Return([]*domain.Reservation{}, nil).Once()
	repo.On("UpdateStatus", mock.Anything, int64(1), int64(1), domain.StatusConfirmed).Return(nil, reservationRepo.ErrOverlap)
	repo.On("ListByRoom", mock.Anything, "101", pending.Stay, domain.BlockingStatuses(false)).
		Return([]*domain.Reservation{holder}, nil).Once()

	_, err := newService(repo, false, "2025-09-01").UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})

	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
	conflict, ok := domain.AsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, int64(2), conflict.ReservationID)
	assert.Equal(t, holder.Stay, conflict.Stay)
}

func TestUpdateStatus_ConfirmBlockingPendingSkipsConflictCheck(t *testing.T) {
	repo := new(MockReservationRepository)
	pending := reservationOf(1, "101", "2025-09-10", "2025-09-12", domain.StatusPending)
	confirmed := *pending
	confirmed.Status = domain.StatusConfirmed

	repo.On("GetByID", mock.Anything, int64(1)).Return(pending, nil)
	repo.On("LockRoom", mock.Anything, "101").Return(nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), int64(1), domain.StatusConfirmed).Return(&confirmed, nil)

	_, err := newService(repo, true, "2025-09-01").UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "ListByRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_StaleVersion(t *testing.T) {
	repo := new(MockReservationRepository)
	res := reservationOf(1, "101", "2025-09-10", "2025-09-12", domain.StatusCheckedIn)
	res.Version = 3

	repo.On("GetByID", mock.Anything, int64(1)).Return(res, nil)
	repo.On("LockRoom", mock.Anything, "101").Return(nil)

	_, err := newService(repo, true, "2025-09-11").UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Status:  "checked_out",
		Version: ptr.Ptr(int64(2)),
	})

	assert.ErrorIs(t, err, domain.ErrConflictingUpdate)
}

func TestUpdateStatus_RepositoryVersionConflict(t *testing.T) {
	repo := new(MockReservationRepository)
	res := reservationOf(1, "101", "2025-09-10", "2025-09-12", domain.StatusCheckedIn)

	repo.On("GetByID", mock.Anything, int64(1)).Return(res, nil)
	repo.On("LockRoom", mock.Anything, "101").Return(nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), int64(1), domain.StatusCheckedOut).Return(nil, reservationRepo.ErrVersionConflict)

	_, err := newService(repo, true, "2025-09-12").UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "checked_out"})

	assert.ErrorIs(t, err, domain.ErrConflictingUpdate)
}

func TestUpdateStatus_CancelIsNotAStatusChange(t *testing.T) {
	repo := new(MockReservationRepository)

	_, err := newService(repo, true, "2025-09-01").UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetSettlement(t *testing.T) {
	repo := new(MockReservationRepository)
	repo.On("GetSettlement", mock.Anything, int64(1)).Return(&domain.CancellationSettlement{
		ReservationID:   1,
		OriginalAmount:  decimal.RequireFromString("2000"),
		CancellationFee: decimal.RequireFromString("400"),
		RefundAmount:    decimal.RequireFromString("1600"),
		RefundType:      domain.RefundPartial,
	}, nil)
	repo.On("GetSettlement", mock.Anything, int64(2)).Return(nil, reservationRepo.ErrSettlementNotFound)

	svc := newService(repo, true, "2025-09-01")

	resp, err := svc.GetSettlement(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "1600.00", resp.RefundAmount)
	assert.Equal(t, "Partial Refund", resp.RefundType)

	_, err = svc.GetSettlement(context.Background(), 2)
	assert.ErrorIs(t, err, ErrSettlementNotFound)
}
