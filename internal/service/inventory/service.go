package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	inventoryRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/inventory"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/inventory/models"
)

// Service сервис номерного фонда
type Service struct {
	snapshots SnapshotSource
	roomRepo  RoomRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса номерного фонда
func NewService(snapshots SnapshotSource, roomRepo RoomRepository, logger Logger) *Service {
	return &Service{
		snapshots: snapshots,
		roomRepo:  roomRepo,
		logger:    logger,
	}
}

// ListRooms возвращает все номера
func (s *Service) ListRooms(ctx context.Context) (*models.RoomListResponse, error) {
	snapshot, err := s.snapshots.GetSnapshot(ctx)
	if err != nil {
		s.logger.Error("ListRooms: failed to load inventory: %v", err)
		return nil, fmt.Errorf("%w: ListRooms - load inventory: %v", ErrInternal, err)
	}

	resp := &models.RoomListResponse{Rooms: make([]models.RoomResponse, 0, len(snapshot.Rooms))}
	for i := range snapshot.Rooms {
		resp.Rooms = append(resp.Rooms, models.FromDomainRoom(&snapshot.Rooms[i]))
	}
	return resp, nil
}

// ListRoomTypes возвращает все типы номеров
func (s *Service) ListRoomTypes(ctx context.Context) (*models.RoomTypeListResponse, error) {
	snapshot, err := s.snapshots.GetSnapshot(ctx)
	if err != nil {
		s.logger.Error("ListRoomTypes: failed to load inventory: %v", err)
		return nil, fmt.Errorf("%w: ListRoomTypes - load inventory: %v", ErrInternal, err)
	}

	resp := &models.RoomTypeListResponse{RoomTypes: make([]models.RoomTypeResponse, 0, len(snapshot.RoomTypes))}
	for i := range snapshot.RoomTypes {
		resp.RoomTypes = append(resp.RoomTypes, models.FromDomainRoomType(&snapshot.RoomTypes[i]))
	}
	return resp, nil
}

// SetRoomState меняет эксплуатационное состояние номера и сбрасывает кэш.
// in_service снимает окно обслуживания.
func (s *Service) SetRoomState(ctx context.Context, roomNumber string, req *models.SetRoomStateRequest) (*models.RoomResponse, error) {
	s.logger.Info("SetRoomState: room=%s, state=%s", roomNumber, req.State)

	// 1. Валидация входных данных
	update, err := toStateUpdate(roomNumber, req)
	if err != nil {
		s.logger.Warn("SetRoomState: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	room, err := s.roomRepo.UpdateRoomState(ctx, update)
	if err != nil {
		if errors.Is(err, inventoryRepo.ErrRoomNotFound) {
			s.logger.Warn("SetRoomState: room=%s not found", roomNumber)
			return nil, ErrRoomNotFound
		}
		s.logger.Error("SetRoomState: repository error for room=%s: %v", roomNumber, err)
		return nil, fmt.Errorf("%w: SetRoomState - repository error: %v", ErrInternal, err)
	}

	// 3. Сбрасываем кэш номерного фонда
	s.snapshots.Invalidate(ctx)

	resp := models.FromDomainRoom(room)
	return &resp, nil
}

func toStateUpdate(roomNumber string, req *models.SetRoomStateRequest) (domain.RoomStateUpdate, error) {
	if roomNumber == "" {
		return domain.RoomStateUpdate{}, fmt.Errorf("%w: room number is required", ErrInvalidInput)
	}

	state := domain.OperationalState(req.State)
	if !state.IsValid() {
		return domain.RoomStateUpdate{}, fmt.Errorf("%w: unknown state %q", ErrInvalidInput, req.State)
	}

	update := domain.RoomStateUpdate{RoomNumber: roomNumber, State: state}
	if state == domain.StateInService {
		return update, nil
	}

	if req.Since != nil && req.Until != nil && !req.Until.After(*req.Since) {
		return domain.RoomStateUpdate{}, fmt.Errorf("%w: 'until' must be after 'since'", ErrInvalidInput)
	}
	update.Since = req.Since
	update.Until = req.Until

	return update, nil
}
