package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrRoomNotFound возвращается, когда номер для блокировки не найден
	ErrRoomNotFound = errors.New("reservation.repository: room not found")

	// ErrSettlementNotFound возвращается, когда у брони нет расчета отмены
	ErrSettlementNotFound = errors.New("reservation.repository: settlement not found")

	// ErrOverlap возвращается, когда БД отклонила пересекающуюся бронь (exclusion constraint)
	ErrOverlap = errors.New("reservation.repository: overlapping reservation")

	// ErrSerialization возвращается при конфликте сериализации транзакции
	ErrSerialization = errors.New("reservation.repository: serialization failure")

	// ErrVersionConflict возвращается, когда бронь изменили параллельно
	ErrVersionConflict = errors.New("reservation.repository: version conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
