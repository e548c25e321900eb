package book_slot

import (
	"time"

	"github.com/shoemant/strata-web/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	UserID     int64            // ID пользователя
	ResourceID int64            // ID ресурса
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота (например, "09:30")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID бронирования
	UserID          int64            // ID пользователя
	ResourceID      int64            // ID ресурса
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала слота
	EndTime         types.TimeString // Время конца слота
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные ресурса
	ResourceName     string  // Название ресурса
	ResourceLocation *string // Расположение ресурса
	ResourceTypeName *string // Тип ресурса

	// AlreadyExisted выставляется, если у пользователя уже было
	// подтверждённое бронирование этого слота: повторный запрос
	// возвращает его без создания дубликата
	AlreadyExisted bool

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
