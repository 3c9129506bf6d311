package availability

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/ptr"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Index классифицирует номера по занятости на запрошенный период.
// Чистая функция от (инвентарь, брони, запрос, сегодня): ничего не читает и не пишет сам.
type Index struct {
	opts Options
}

// NewIndex создает индекс
func NewIndex(opts Options) *Index {
	if opts.LookaheadDays < 0 {
		opts.LookaheadDays = 0
	}
	return &Index{opts: opts}
}

// PendingBlocks сообщает, занимает ли номер бронь в статусе pending
func (ix *Index) PendingBlocks() bool {
	return ix.opts.PendingBlocks
}

// LookaheadDays горизонт поиска свободного окна после заезда
func (ix *Index) LookaheadDays() int {
	return ix.opts.LookaheadDays
}

// Classify строит статус каждого номера на период запроса.
// Номера, не вмещающие гостей, исключаются из списка и считаются в FilteredOut.
func (ix *Index) Classify(
	snapshot *domain.InventorySnapshot,
	reservations []*domain.Reservation,
	query Query,
	today types.Date,
) (*Result, error) {
	if !query.Stay.IsValid() {
		return nil, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidQuery)
	}
	if query.Guests < 1 {
		return nil, fmt.Errorf("%w: guests must be positive, got %d", ErrInvalidQuery, query.Guests)
	}

	result := &Result{Rooms: make([]RoomAvailability, 0)}
	if snapshot == nil {
		return result, nil
	}

	held := ix.groupBlocking(reservations)

	for i := range snapshot.Rooms {
		room := &snapshot.Rooms[i]

		// Фильтр по типу номера
		if query.RoomTypeID != nil && (room.RoomTypeID == nil || *room.RoomTypeID != *query.RoomTypeID) {
			continue
		}

		// Фильтр по вместимости (с учетом доп. мест)
		if room.MaxOccupancy() < query.Guests {
			result.FilteredOut++
			continue
		}

		ra := ix.ClassifyRoom(room, snapshot.RoomTypeOf(room), held[room.Number], query.Stay, today)
		result.Rooms = append(result.Rooms, ra)
	}

	sort.SliceStable(result.Rooms, func(i, j int) bool {
		return lessRoom(&result.Rooms[i].Room, &result.Rooms[j].Room)
	})

	// Агрегаты считаем только по итоговому списку
	for _, ra := range result.Rooms {
		result.Counts.add(ra.Status)
	}

	return result, nil
}

// ClassifyRoom классифицирует один номер. reservations - брони этого номера
// (неблокирующие отбрасываются здесь же).
func (ix *Index) ClassifyRoom(
	room *domain.Room,
	roomType *domain.RoomType,
	reservations []*domain.Reservation,
	stay domain.StayRange,
	today types.Date,
) RoomAvailability {
	held := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.IsBlocking(ix.opts.PendingBlocks) && r.Stay.IsValid() {
			held = append(held, r)
		}
	}

	var (
		checkedIn []*domain.Reservation
		upcoming  []*domain.Reservation
	)
	for _, r := range held {
		if !r.Stay.Overlaps(stay) {
			continue
		}
		if r.Status == domain.StatusCheckedIn {
			checkedIn = append(checkedIn, r)
		} else {
			upcoming = append(upcoming, r)
		}
	}

	ra := RoomAvailability{
		Room:     *room,
		RoomType: roomType,
		Status:   StatusAvailable,
	}

	// Приоритет: обслуживание/уборка > заселен > забронирован > свободен
	switch {
	case room.StateBlocks(stay):
		ra.Status = StatusMaintenance
		if room.State == domain.StateCleaning {
			ra.Status = StatusCleaning
		}
		ra.Since = room.StateSince
		ra.Until = room.StateUntil
		ra.CurrentBooking = soonestCheckOut(append(checkedIn, upcoming...))

	case len(checkedIn) > 0:
		ra.Status = StatusOccupied
		ra.CurrentBooking = soonestCheckOut(checkedIn)

	case len(upcoming) > 0:
		// Завершившаяся, но не закрытая бронь тоже держит номер: это booked, а не prebooked
		ra.CurrentBooking = soonestCheckOut(upcoming)
		ra.Status = StatusBooked
		if ra.CurrentBooking.Stay.CheckIn.After(today) {
			ra.Status = StatusPrebooked
		}
	}

	if ra.CurrentBooking != nil && (ra.Status == StatusOccupied || ra.Status == StatusBooked || ra.Status == StatusPrebooked) {
		ra.Since = ptr.Ptr(ra.CurrentBooking.Stay.CheckIn)
		ra.Until = ptr.Ptr(ra.CurrentBooking.Stay.CheckOut)
	}

	ra.NextBooking = nextBooking(held, ra.CurrentBooking, stay, today)
	ra.IsBookable = ra.Status == StatusAvailable

	if !ra.IsBookable {
		ra.NextFreeWindow = ix.nextFreeWindow(room, held, stay, today)
	}

	return ra
}

// FindConflict проверка пересечения для одного номера, используется при записи брони.
// Возвращает блокирующую бронь с самым ранним заездом, пересекающую stay, или nil.
func (ix *Index) FindConflict(reservations []*domain.Reservation, stay domain.StayRange) *domain.Reservation {
	return FindConflict(reservations, stay, ix.opts.PendingBlocks)
}

// FindConflict см. Index.FindConflict
func FindConflict(reservations []*domain.Reservation, stay domain.StayRange, pendingBlocks bool) *domain.Reservation {
	var conflict *domain.Reservation
	for _, r := range reservations {
		if !r.IsBlocking(pendingBlocks) || !r.Stay.Overlaps(stay) {
			continue
		}
		if conflict == nil || earlierCheckIn(r, conflict) {
			conflict = r
		}
	}
	return conflict
}

// nextFreeWindow ищет ближайший период той же длины без пересечений,
// начиная с заезда запроса (или с конца обслуживания), в пределах горизонта
func (ix *Index) nextFreeWindow(
	room *domain.Room,
	held []*domain.Reservation,
	stay domain.StayRange,
	today types.Date,
) *domain.StayRange {
	// Для запросов задним числом окно ищется от сегодняшнего дня
	start := types.MaxDate(stay.CheckIn, today)
	limit := start.AddDays(ix.opts.LookaheadDays)
	nights := stay.Nights()

	for !start.After(limit) {
		candidate := domain.StayRange{CheckIn: start, CheckOut: start.AddDays(nights)}

		if room.StateBlocks(candidate) {
			if room.StateUntil == nil {
				// Обслуживание без даты окончания - подсказать нечего
				return nil
			}
			start = *room.StateUntil
			continue
		}

		// Сдвигаемся на самый поздний выезд среди пересекающих броней
		blocked := false
		for _, r := range held {
			if r.Stay.Overlaps(candidate) {
				blocked = true
				start = types.MaxDate(start, r.Stay.CheckOut)
			}
		}
		if !blocked {
			return &candidate
		}
	}

	return nil
}

// soonestCheckOut бронь с самым ранним выездом, при равенстве - с меньшим ID
func soonestCheckOut(reservations []*domain.Reservation) *domain.Reservation {
	var best *domain.Reservation
	for _, r := range reservations {
		if best == nil {
			best = r
			continue
		}
		switch r.Stay.CheckOut.Compare(best.Stay.CheckOut) {
		case -1:
			best = r
		case 0:
			if r.ID < best.ID {
				best = r
			}
		}
	}
	return best
}

// nextBooking ближайшая по заезду бронь, которая еще не закончилась
// и не заканчивается до начала запроса. Текущая бронь не учитывается.
func nextBooking(
	held []*domain.Reservation,
	current *domain.Reservation,
	stay domain.StayRange,
	today types.Date,
) *domain.Reservation {
	var next *domain.Reservation
	for _, r := range held {
		if r == current {
			continue
		}
		if !r.Stay.CheckOut.After(today) || !r.Stay.CheckOut.After(stay.CheckIn) {
			continue
		}
		if r.Stay.CheckIn.Before(today) {
			continue
		}
		if next == nil || earlierCheckIn(r, next) {
			next = r
		}
	}
	return next
}

// earlierCheckIn порядок: заезд, затем выезд, затем ID
func earlierCheckIn(a, b *domain.Reservation) bool {
	if c := a.Stay.CheckIn.Compare(b.Stay.CheckIn); c != 0 {
		return c < 0
	}
	if c := a.Stay.CheckOut.Compare(b.Stay.CheckOut); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

func (ix *Index) groupBlocking(reservations []*domain.Reservation) map[string][]*domain.Reservation {
	byRoom := make(map[string][]*domain.Reservation)
	for _, r := range reservations {
		if r == nil || !r.IsBlocking(ix.opts.PendingBlocks) {
			continue
		}
		byRoom[r.RoomNumber] = append(byRoom[r.RoomNumber], r)
	}
	return byRoom
}

// lessRoom сортировка по этажу, затем по номеру ("99" < "101")
func lessRoom(a, b *domain.Room) bool {
	if a.Floor != b.Floor {
		return a.Floor < b.Floor
	}
	na, errA := strconv.Atoi(a.Number)
	nb, errB := strconv.Atoi(b.Number)
	if errA == nil && errB == nil && na != nb {
		return na < nb
	}
	return a.Number < b.Number
}
