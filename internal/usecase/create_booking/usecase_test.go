package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	inventoryRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/inventory"
	reservationRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-HotelBookingService/internal/integrations/eventbus"
	catalogClient "github.com/m04kA/SMC-HotelBookingService/internal/integrations/servicecatalog"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/pricing"
	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// memoryReservations хранилище броней в памяти
type memoryReservations struct {
	mu        sync.Mutex
	nextID    int64
	items     []*domain.Reservation
	createErr error
	listCalls int
	// staleReads первые чтения не видят уже сохраненные брони, как снимок проигравшей транзакции
	staleReads int
}

func (m *memoryReservations) LockRoom(ctx context.Context, roomNumber string) error {
	if roomNumber == "404" {
		return reservationRepo.ErrRoomNotFound
	}
	return nil
}

func (m *memoryReservations) ListByRoom(ctx context.Context, roomNumber string, stay domain.StayRange, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++

	result := make([]*domain.Reservation, 0)
	if m.staleReads > 0 {
		m.staleReads--
		return result, nil
	}
	for _, r := range m.items {
		if r.RoomNumber != roomNumber || !r.Stay.Overlaps(stay) {
			continue
		}
		for _, s := range statuses {
			if r.Status == s {
				result = append(result, r)
				break
			}
		}
	}
	return result, nil
}

func (m *memoryReservations) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	for _, r := range m.items {
		if r.RoomNumber == reservation.RoomNumber && r.Stay.Overlaps(reservation.Stay) && r.IsBlocking(false) {
			return nil, reservationRepo.ErrOverlap
		}
	}

	m.nextID++
	created := *reservation
	created.ID = m.nextID
	created.Version = 1
	m.items = append(m.items, &created)
	return &created, nil
}

// serialTx выполняет транзакции строго по очереди, как блокировка номера в БД
type serialTx struct {
	mu sync.Mutex
}

func (tx *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	return fn(ctx)
}

type fakeInventory struct {
	rooms map[string]domain.Room
	types map[int64]domain.RoomType
}

func (f *fakeInventory) GetRoom(ctx context.Context, number string) (*domain.Room, error) {
	room, ok := f.rooms[number]
	if !ok {
		return nil, inventoryRepo.ErrRoomNotFound
	}
	return &room, nil
}

func (f *fakeInventory) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	rt, ok := f.types[id]
	if !ok {
		return nil, nil
	}
	return &rt, nil
}

type MockServiceCatalogClient struct {
	mock.Mock
}

func (m *MockServiceCatalogClient) GetServices(ctx context.Context, ids []int64) (map[int64]domain.ExtraService, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.ExtraService), args.Error(1)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.ReservationCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishReservationCreated(ctx context.Context, event eventbus.ReservationCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type countingMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
}

func (m *countingMetrics) IncBookingCreated() {
	m.mu.Lock()
	m.created++
	m.mu.Unlock()
}

func (m *countingMetrics) IncBookingConflict() {
	m.mu.Lock()
	m.conflicts++
	m.mu.Unlock()
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	repo      *memoryReservations
	catalog   *MockServiceCatalogClient
	publisher *recordingPublisher
	metrics   *countingMetrics
	uc        *UseCase
}

func date(s string) types.Date {
	return types.MustParseDate(s)
}

func newFixture(opts Options) *fixture {
	since := date("2025-09-20")
	until := date("2025-09-25")
	inventory := &fakeInventory{
		rooms: map[string]domain.Room{
			"101": {Number: "101", Capacity: 2, ExtraBeds: 1, BasePrice: decimal.RequireFromString("2000"), State: domain.StateInService},
			"102": {Number: "102", Capacity: 2, BasePrice: decimal.RequireFromString("2000"), RoomTypeID: ptr.Ptr(int64(1)), State: domain.StateInService},
			"103": {Number: "103", Capacity: 2, BasePrice: decimal.RequireFromString("2000"), State: domain.StateMaintenance, StateSince: &since, StateUntil: &until},
		},
		types: map[int64]domain.RoomType{
			1: {ID: 1, Name: "Standard", BasePrice: ptr.Ptr(decimal.RequireFromString("2500"))},
		},
	}

	f := &fixture{
		repo:      &memoryReservations{},
		catalog:   new(MockServiceCatalogClient),
		publisher: &recordingPublisher{},
		metrics:   &countingMetrics{},
	}
	f.uc = NewUseCase(
		f.repo,
		inventory,
		f.catalog,
		pricing.NewEngine(decimal.RequireFromString("700"), "RUB"),
		f.publisher,
		f.metrics,
		&serialTx{},
		opts,
		logger.Discard(),
	)
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)}
	return f
}

func request(room, in, out string) *Request {
	return &Request{
		RoomNumber: room,
		CheckIn:    date(in),
		CheckOut:   date(out),
		Adults:     2,
		GuestName:  "Alex Morgan",
		GuestPhone: "+7 900 000 00 00",
	}
}

func TestExecute_CreatesConfirmedReservation(t *testing.T) {
	f := newFixture(Options{PendingBlocks: true})
	f.catalog.On("GetServices", mock.Anything, []int64{5}).Return(map[int64]domain.ExtraService{
		5: {ID: 5, Name: "Breakfast", Price: decimal.RequireFromString("450.50")},
	}, nil)

	req := request("102", "2025-09-10", "2025-09-12")
	req.Services = []domain.ServiceSelection{{ServiceID: 5, Quantity: 4}}
	req.PaidAmount = decimal.RequireFromString("1000")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	r := resp.Reservation
	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, domain.StatusConfirmed, r.Status)
	assert.Equal(t, "2500", r.NightlyRate.String())
	assert.Equal(t, "5000", r.BaseTotal.String())
	assert.Equal(t, "1802", r.ServicesTotal.String())
	assert.Equal(t, "6802", r.TotalAmount.String())
	assert.Equal(t, domain.PaymentPartiallyPaid, r.PaymentStatus)
	require.Len(t, r.Services, 1)
	assert.Equal(t, "Breakfast", r.Services[0].Name)
	assert.NoError(t, resp.Quote.Verify())

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, int64(1), f.publisher.events[0].ReservationID)
	assert.Equal(t, 1, f.metrics.created)
}

func TestExecute_PendingStatusAndExtraGuest(t *testing.T) {
	f := newFixture(Options{PendingBlocks: true})

	req := request("101", "2025-09-10", "2025-09-11")
	req.Children = 1
	req.Pending = true

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Reservation.Status)
	assert.Equal(t, "700", resp.Reservation.ExtraGuestTotal.String())
	assert.Equal(t, "2700", resp.Reservation.TotalAmount.String())
	assert.Equal(t, domain.PaymentUnpaid, resp.Reservation.PaymentStatus)
}

func TestExecute_OverlapIsRejected(t *testing.T) {
	f := newFixture(Options{PendingBlocks: true})

	_, err := f.uc.Execute(context.Background(), request("101", "2025-09-10", "2025-09-14"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("101", "2025-09-13", "2025-09-15"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)

	conflict, ok := domain.AsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, int64(1), conflict.ReservationID)
	assert.Equal(t, date("2025-09-10"), conflict.Stay.CheckIn)
	assert.Equal(t, date("2025-09-14"), conflict.Stay.CheckOut)

	assert.Len(t, f.repo.items, 1)
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_BackToBackStaysAreAllowed(t *testing.T) {
	f := newFixture(Options{PendingBlocks: true})

	_, err := f.uc.Execute(context.Background(), request("101", "2025-09-10", "2025-09-12"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("101", "2025-09-12", "2025-09-14"))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("101", "2025-09-08", "2025-09-10"))
	require.NoError(t, err)

	assert.Len(t, f.repo.items, 3)
}

func TestExecute_PendingDoesNotBlockWhenConfigured(t *testing.T) {
	f := newFixture(Options{PendingBlocks: false})

	first := request("101", "2025-09-10", "2025-09-12")
	first.Pending = true
	_, err := f.uc.Execute(context.Background(), first)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request("101", "2025-09-11", "2025-09-13"))
	assert.NoError(t, err)
}

func TestExecute_MaintenanceWindow(t *testing.T) {
	f := newFixture(Options{PendingBlocks: true})

	_, err := f.uc.Execute(context.Background(), request("103", "2025-09-24", "2025-09-26"))
	require.Error(t, err)
	conflict, ok := domain.AsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, domain.StateMaintenance, conflict.State)
	assert.Equal(t, date("2025-09-20"), conflict.Stay.CheckIn)
	assert.Equal(t, date("2025-09-25"), conflict.Stay.CheckOut)

	_, err = f.uc.Execute(context.Background(), request("103", "2025-09-25", "2025-09-27"))
	assert.NoError(t, err)
}

func TestExecute_Backfill(t *testing.T) {
	f := newFixture(Options{PendingBlocks: true})

	past := request("101", "2025-08-20", "2025-08-22")
	_, err := f.uc.Execute(context.Background(), past)
	assert.ErrorIs(t, err, ErrCheckInInPast)

	past.Backfill = true
	_, err = f.uc.Execute(context.Background(), past)
	require.NoError(t, err)

	overlapping := request("101", "2025-08-21", "2025-08-23")
	overlapping.Backfill = true
	_, err = f.uc.Execute(context.Background(), overlapping)
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
}

func TestExecute_PaymentRules(t *testing.T) {
	tests := []struct {
		name    string
		require bool
		paid    string
		owner   bool
		wantErr error
	}{
		{name: "advance not required", paid: "0"},
		{name: "advance missing", require: true, paid: "0", wantErr: ErrPaymentRequired},
		{name: "advance paid", require: true, paid: "100"},
		{name: "owner reference", require: true, paid: "0", owner: true},
		{name: "overpaid", paid: "4000.01", wantErr: ErrInvalidPayment},
		{name: "negative", paid: "-1", wantErr: ErrInvalidPayment},
		{name: "paid in full", paid: "4000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{PendingBlocks: true, RequireAdvancePayment: tt.require})

			req := request("101", "2025-09-10", "2025-09-12")
			req.PaidAmount = decimal.RequireFromString(tt.paid)
			req.OwnerReference = tt.owner

			_, err := f.uc.Execute(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Empty(t, f.repo.items)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "no room", mutate: func(r *Request) { r.RoomNumber = "" }},
		{name: "same day", mutate: func(r *Request) { r.CheckOut = r.CheckIn }},
		{name: "no adults", mutate: func(r *Request) { r.Adults = 0 }},
		{name: "negative children", mutate: func(r *Request) { r.Children = -1 }},
		{name: "no guest name", mutate: func(r *Request) { r.GuestName = "  " }},
		{name: "bad email", mutate: func(r *Request) { r.GuestEmail = "guest.example.com" }},
		{name: "zero service quantity", mutate: func(r *Request) {
			r.Services = []domain.ServiceSelection{{ServiceID: 1, Quantity: 0}}
		}},
		{name: "over capacity", mutate: func(r *Request) { r.Adults = 3; r.Children = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(Options{PendingBlocks: true})

			req := request("101", "2025-09-10", "2025-09-12")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, f.repo.items)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture(Options{PendingBlocks: true})

	_, err := f.uc.Execute(context.Background(), request("404", "2025-09-10", "2025-09-12"))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	f.catalog.On("GetServices", mock.Anything, []int64{9}).Return(nil, catalogClient.ErrServiceNotFound)
	req := request("101", "2025-09-10", "2025-09-12")
	req.Services = []domain.ServiceSelection{{ServiceID: 9, Quantity: 1}}

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.repo.listCalls)
}

func TestExecute_StorageConflictsMapToUnavailable(t *testing.T) {
	for _, storageErr := range []error{reservationRepo.ErrOverlap, reservationRepo.ErrSerialization} {
		f := newFixture(Options{PendingBlocks: true})
		f.repo.createErr = storageErr

		_, err := f.uc.Execute(context.Background(), request("101", "2025-09-10", "2025-09-12"))
		assert.ErrorIs(t, err, ErrRoomUnavailable)
		assert.ErrorIs(t, err, domain.ErrRoomUnavailable)
		assert.Equal(t, 1, f.metrics.conflicts)
	}
}

func TestExecute_ConcurrentWinnerWindowIsReported(t *testing.T) {
	f := newFixture(Options{PendingBlocks: true})

	_, err := f.uc.Execute(context.Background(), request("101", "2025-09-10", "2025-09-14"))
	require.NoError(t, err)

	// Проверка в транзакции пропускает бронь, вставку отклоняет ограничение БД
	f.repo.staleReads = 1
	_, err = f.uc.Execute(context.Background(), request("101", "2025-09-12", "2025-09-15"))

	assert.ErrorIs(t, err, ErrRoomUnavailable)
	conflict, ok := domain.AsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, int64(1), conflict.ReservationID)
	assert.Equal(t, date("2025-09-10"), conflict.Stay.CheckIn)
	assert.Equal(t, date("2025-09-14"), conflict.Stay.CheckOut)
	assert.Len(t, f.repo.items, 1)
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_OpenEndedMaintenanceHasNoCheckOut(t *testing.T) {
	f := newFixture(Options{PendingBlocks: true})
	since := date("2025-09-05")
	f.uc.inventoryRepo = &fakeInventory{rooms: map[string]domain.Room{
		"104": {Number: "104", Capacity: 2, BasePrice: decimal.RequireFromString("2000"), State: domain.StateCleaning, StateSince: &since},
	}}

	_, err := f.uc.Execute(context.Background(), request("104", "2025-09-10", "2025-09-12"))

	conflict, ok := domain.AsConflictError(err)
	require.True(t, ok)
	assert.Equal(t, domain.StateCleaning, conflict.State)
	assert.Equal(t, since, conflict.Stay.CheckIn)
	assert.True(t, conflict.Stay.CheckOut.IsZero())
}

func TestExecute_PublishFailureKeepsReservation(t *testing.T) {
	f := newFixture(Options{PendingBlocks: true})
	f.publisher.err = errors.New("broker down")

	resp, err := f.uc.Execute(context.Background(), request("101", "2025-09-10", "2025-09-12"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Reservation.ID)
	assert.Len(t, f.repo.items, 1)
}

func TestExecute_ConcurrentSubmissions(t *testing.T) {
	f := newFixture(Options{PendingBlocks: true})

	const workers = 8
	var (
		wg        sync.WaitGroup
		start     = make(chan struct{})
		successes int
		conflicts int
		mu        sync.Mutex
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start

			// Все заявки пересекаются по ночи 2025-09-11
			req := request("101", "2025-09-10", "2025-09-12")
			if i%2 == 1 {
				req = request("101", "2025-09-11", "2025-09-13")
			}

			_, err := f.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrRoomUnavailable):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, f.repo.items, 1)
	assert.Len(t, f.publisher.events, 1)
}
