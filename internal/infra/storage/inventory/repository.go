package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/psqlbuilder"
)

var roomColumns = []string{
	"number",
	"floor",
	"capacity",
	"extra_beds",
	"base_price",
	"room_type_id",
	"custom_price",
	"amenities",
	"description",
	"state",
	"state_since",
	"state_until",
}

// Repository репозиторий номерного фонда
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория номерного фонда
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSnapshot читает все номера и типы номеров
func (r *Repository) GetSnapshot(ctx context.Context) (*domain.InventorySnapshot, error) {
	rooms, err := r.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	roomTypes, err := r.ListRoomTypes(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.InventorySnapshot{Rooms: rooms, RoomTypes: roomTypes}, nil
}

// ListRooms получает все номера, упорядоченные по этажу и номеру
func (r *Repository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms").
		OrderBy("floor", "number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRooms - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRooms - rows iteration: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// GetRoom получает номер. В транзакции читает заблокированную строку.
func (r *Repository) GetRoom(ctx context.Context, number string) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(roomColumns...).
		From("rooms").
		Where(squirrel.Eq{"number": number}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - scan room: %v", ErrScanRow, err)
	}

	return room, nil
}

// GetRoomType получает тип номера по ID. Возвращает nil, если тип не найден.
func (r *Repository) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "description", "base_price", "custom_price").
		From("room_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomType - build select query: %v", ErrBuildQuery, err)
	}

	var rt domain.RoomType
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rt.ID, &rt.Name, &rt.Description, &rt.BasePrice, &rt.CustomPrice)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomType - scan room type: %v", ErrScanRow, err)
	}

	return &rt, nil
}

// ListRoomTypes получает все типы номеров
func (r *Repository) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "description", "base_price", "custom_price").
		From("room_types").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRoomTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRoomTypes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	roomTypes := make([]domain.RoomType, 0)
	for rows.Next() {
		var rt domain.RoomType
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Description, &rt.BasePrice, &rt.CustomPrice); err != nil {
			return nil, fmt.Errorf("%w: ListRoomTypes - scan row: %v", ErrScanRow, err)
		}
		roomTypes = append(roomTypes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRoomTypes - rows iteration: %v", ErrScanRow, err)
	}

	return roomTypes, nil
}

// UpdateRoomState меняет эксплуатационное состояние номера
func (r *Repository) UpdateRoomState(ctx context.Context, update domain.RoomStateUpdate) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("rooms").
		Set("state", update.State).
		Set("state_since", update.Since).
		Set("state_until", update.Until).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"number": update.RoomNumber}).
		Suffix("RETURNING number").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateRoomState - build update query: %v", ErrBuildQuery, err)
	}

	var number string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&number)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateRoomState - execute update: %v", ErrExecQuery, err)
	}

	return r.GetRoom(ctx, number)
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	amenities := make([]string, 0)

	err := row.Scan(
		&room.Number,
		&room.Floor,
		&room.Capacity,
		&room.ExtraBeds,
		&room.BasePrice,
		&room.RoomTypeID,
		&room.CustomPrice,
		pq.Array(&amenities),
		&room.Description,
		&room.State,
		&room.StateSince,
		&room.StateUntil,
	)
	if err != nil {
		return nil, err
	}

	room.Amenities = amenities
	return &room, nil
}
