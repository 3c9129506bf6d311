package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Коды ошибок PostgreSQL
const (
	exclusionViolation   = "23P01"
	serializationFailure = "40001"
)

var reservationColumns = []string{
	"id",
	"room_number",
	"check_in",
	"check_out",
	"adults",
	"children",
	"status",
	"guest_name",
	"guest_phone",
	"guest_email",
	"notes",
	"owner_reference",
	"nightly_rate",
	"base_total",
	"extra_guest_total",
	"services_total",
	"total_amount",
	"paid_amount",
	"payment_status",
	"version",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронями номеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockRoom блокирует строку номера до конца транзакции.
// Все записи броней одного номера проходят через эту блокировку и выполняются по очереди.
func (r *Repository) LockRoom(ctx context.Context, roomNumber string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("number").
		From("rooms").
		Where(squirrel.Eq{"number": roomNumber}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockRoom - build select query: %v", ErrBuildQuery, err)
	}

	var number string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&number)
	if err == sql.ErrNoRows {
		return ErrRoomNotFound
	}
	if err != nil {
		return queryError("LockRoom - lock room", err)
	}

	return nil
}

// Create сохраняет бронь и ее доп. услуги.
// Вызывать внутри транзакции, иначе услуги могут записаться без брони.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"room_number",
			"check_in",
			"check_out",
			"adults",
			"children",
			"status",
			"guest_name",
			"guest_phone",
			"guest_email",
			"notes",
			"owner_reference",
			"nightly_rate",
			"base_total",
			"extra_guest_total",
			"services_total",
			"total_amount",
			"paid_amount",
			"payment_status",
		).
		Values(
			res.RoomNumber,
			res.Stay.CheckIn,
			res.Stay.CheckOut,
			res.Adults,
			res.Children,
			res.Status,
			res.GuestName,
			res.GuestPhone,
			res.GuestEmail,
			res.Notes,
			res.OwnerReference,
			res.NightlyRate,
			res.BaseTotal,
			res.ExtraGuestTotal,
			res.ServicesTotal,
			res.TotalAmount,
			res.PaidAmount,
			res.PaymentStatus,
		).
		Suffix("RETURNING id, version, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.Version,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, queryError(fmt.Sprintf("Create - room %s %s", res.RoomNumber, res.Stay), err)
	}

	if len(res.Services) == 0 {
		return res, nil
	}

	insert := psqlbuilder.Insert("reservation_services").
		Columns("reservation_id", "service_id", "name", "unit_price", "quantity", "total")
	for _, s := range res.Services {
		insert = insert.Values(res.ID, s.ServiceID, s.Name, s.UnitPrice, s.Quantity, s.Total)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build services insert: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, queryError("Create - insert services", err)
	}

	return res, nil
}

// GetByID получает бронь по ID вместе с доп. услугами
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	services, err := r.listServices(ctx, executor, res.ID)
	if err != nil {
		return nil, err
	}
	res.Services = services

	return res, nil
}

// ListByRoom возвращает брони номера с указанными статусами, пересекающие период.
// В транзакции строки блокируются.
func (r *Repository) ListByRoom(ctx context.Context, roomNumber string, stay domain.StayRange, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"room_number": roomNumber}).
		Where(squirrel.Lt{"check_in": stay.CheckOut}).
		Where(squirrel.Gt{"check_out": stay.CheckIn}).
		Where(squirrel.Eq{"status": statuses}).
		OrderBy("check_in", "id")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError("ListByRoom - execute query", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListOverlapping возвращает брони всех номеров, пересекающие [from, to)
func (r *Repository) ListOverlapping(ctx context.Context, from, to types.Date, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Lt{"check_in": to}).
		Where(squirrel.Gt{"check_out": from}).
		Where(squirrel.Eq{"status": statuses}).
		OrderBy("room_number", "check_in", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// List получает брони по фильтру.
// Без IncludeCancelled отмененные брони не возвращаются.
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		OrderBy("check_in DESC", "id DESC")

	if filter.RoomNumber != nil {
		builder = builder.Where(squirrel.Eq{"room_number": *filter.RoomNumber})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.Gt{"check_out": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"check_in": *filter.To})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// UpdateStatus меняет статус брони при совпадении версии
func (r *Repository) UpdateStatus(ctx context.Context, id, expectedVersion int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "version": expectedVersion}).
		Suffix("RETURNING " + strings.Join(reservationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, r.missingOrStale(ctx, executor, id)
	}
	if err != nil {
		return nil, queryError(fmt.Sprintf("UpdateStatus - reservation %d", id), err)
	}

	return res, nil
}

// Cancel переводит бронь в cancelled при совпадении версии.
// Отменить можно только pending и confirmed брони.
func (r *Repository) Cancel(ctx context.Context, id, expectedVersion int64, paymentStatus domain.PaymentStatus) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", domain.StatusCancelled).
		Set("payment_status", paymentStatus).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{
			"id":      id,
			"version": expectedVersion,
			"status":  domain.CancellableStatuses,
		}).
		Suffix("RETURNING " + strings.Join(reservationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, r.missingOrStale(ctx, executor, id)
	}
	if err != nil {
		return nil, queryError("Cancel - execute update", err)
	}

	return res, nil
}

// CreateSettlement сохраняет расчет отмены. Расчет пишется один раз.
func (r *Repository) CreateSettlement(ctx context.Context, s *domain.CancellationSettlement) (*domain.CancellationSettlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cancellation_settlements").
		Columns(
			"reservation_id",
			"original_amount",
			"cancellation_fee",
			"refund_amount",
			"refund_type",
			"reason",
			"policy_label",
			"fee_source",
			"clamped",
			"warning",
			"notes",
		).
		Values(
			s.ReservationID,
			s.OriginalAmount,
			s.CancellationFee,
			s.RefundAmount,
			s.RefundType,
			s.Reason,
			s.PolicyLabel,
			s.FeeSource,
			s.Clamped,
			s.Warning,
			s.Notes,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSettlement - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt); err != nil {
		return nil, queryError("CreateSettlement - execute insert", err)
	}

	return s, nil
}

// GetSettlement получает расчет отмены брони
func (r *Repository) GetSettlement(ctx context.Context, reservationID int64) (*domain.CancellationSettlement, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"reservation_id",
		"original_amount",
		"cancellation_fee",
		"refund_amount",
		"refund_type",
		"reason",
		"policy_label",
		"fee_source",
		"clamped",
		"warning",
		"notes",
		"created_at",
	).
		From("cancellation_settlements").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettlement - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.CancellationSettlement
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ReservationID,
		&s.OriginalAmount,
		&s.CancellationFee,
		&s.RefundAmount,
		&s.RefundType,
		&s.Reason,
		&s.PolicyLabel,
		&s.FeeSource,
		&s.Clamped,
		&s.Warning,
		&s.Notes,
		&s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSettlementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettlement - scan settlement: %v", ErrScanRow, err)
	}

	return &s, nil
}

func (r *Repository) listServices(ctx context.Context, executor DBExecutor, reservationID int64) ([]domain.ReservationService, error) {
	query, args, err := psqlbuilder.Select("service_id", "name", "unit_price", "quantity", "total").
		From("reservation_services").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("service_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.ReservationService, 0)
	for rows.Next() {
		var s domain.ReservationService
		if err := rows.Scan(&s.ServiceID, &s.Name, &s.UnitPrice, &s.Quantity, &s.Total); err != nil {
			return nil, fmt.Errorf("%w: listServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listServices - rows iteration: %v", ErrScanRow, err)
	}

	return services, nil
}

// missingOrStale различает отсутствующую бронь и устаревшую версию после UPDATE без строк
func (r *Repository) missingOrStale(ctx context.Context, executor DBExecutor, id int64) error {
	query, args, err := psqlbuilder.Select("1").
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: missingOrStale - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrReservationNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: missingOrStale - scan: %v", ErrScanRow, err)
	}

	return ErrVersionConflict
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	err := row.Scan(
		&res.ID,
		&res.RoomNumber,
		&res.Stay.CheckIn,
		&res.Stay.CheckOut,
		&res.Adults,
		&res.Children,
		&res.Status,
		&res.GuestName,
		&res.GuestPhone,
		&res.GuestEmail,
		&res.Notes,
		&res.OwnerReference,
		&res.NightlyRate,
		&res.BaseTotal,
		&res.ExtraGuestTotal,
		&res.ServicesTotal,
		&res.TotalAmount,
		&res.PaidAmount,
		&res.PaymentStatus,
		&res.Version,
		&res.CancelledAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows iteration: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// queryError раскладывает ошибку postgres по sentinel ошибкам репозитория
func queryError(where string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case exclusionViolation:
			return fmt.Errorf("%w: %s: %v", ErrOverlap, where, err)
		case serializationFailure:
			return fmt.Errorf("%w: %s: %v", ErrSerialization, where, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, where, err)
}
