package domain

import (
	"time"

	"github.com/shoemant/strata-web/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed          BookingStatus = "confirmed"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByManager BookingStatus = "cancelled_by_manager"
)

// BookingMode режим бронирования ресурса
type BookingMode string

const (
	// ModeSlot бронирование предгенерированного слота на конкретную дату
	ModeSlot BookingMode = "slot"
	// ModeInterval бронирование произвольного интервала [start,end)
	ModeInterval BookingMode = "interval"
)

// Booking a commitment of one unit of a resource's capacity
// Бронирования никогда не удаляются физически: отмена - переход статуса
type Booking struct {
	ID         int64
	UserID     int64
	ResourceID int64
	Mode       BookingMode

	// Fixed-slot режим: слот адресуется естественным ключом
	// (weekday выводится из BookingDate) плюс конкретная дата
	BookingDate     *time.Time
	SlotStartTime   types.TimeString
	DurationMinutes int

	// Free-form режим: явная пара таймстемпов
	StartAt *time.Time
	EndAt   *time.Time

	Status BookingStatus

	// Orphaned выставляется перегенерацией слотов, когда слот бронирования
	// исчез из нового набора; бронирование сохраняется для истории
	Orphaned bool

	// Денормализованные данные ресурса для истории
	ResourceName     string
	ResourceLocation *string
	ResourceTypeName *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking still holds capacity
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByManager
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// SlotEndTime returns the end time-of-day of a fixed-slot booking
func (b *Booking) SlotEndTime() (types.TimeString, error) {
	return b.SlotStartTime.AddMinutes(b.DurationMinutes)
}

// OverlapsInterval проверяет пересечение free-form бронирования с [start,end)
// Полуоткрытые интервалы: касание границ (e1 == s2) пересечением не считается
func (b *Booking) OverlapsInterval(start, end time.Time) bool {
	if b.StartAt == nil || b.EndAt == nil {
		return false
	}
	return b.StartAt.Before(end) && start.Before(*b.EndAt)
}

// UserBookingsFilter фильтр для истории бронирований пользователя
type UserBookingsFilter struct {
	UserID int64
	Status *BookingStatus // nil - все статусы
}

// BuildingBookingsFilter фильтр для бронирований здания (вид менеджера)
type BuildingBookingsFilter struct {
	BuildingID       int64
	ResourceID       *int64     // опционально: только один ресурс
	StartDate        *time.Time // начало периода (опционально)
	EndDate          *time.Time // конец периода (опционально)
	IncludeCancelled bool
}
