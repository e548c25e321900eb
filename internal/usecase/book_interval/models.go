package book_interval

import "time"

// Request модель запроса на бронирование произвольного интервала
type Request struct {
	UserID     int64     // ID пользователя
	ResourceID int64     // ID ресурса
	StartAt    time.Time // Начало интервала
	EndAt      time.Time // Конец интервала (не входит в бронирование)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64     // ID бронирования
	UserID          int64     // ID пользователя
	ResourceID      int64     // ID ресурса
	StartAt         time.Time // Начало интервала
	EndAt           time.Time // Конец интервала
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус бронирования

	// Денормализованные данные ресурса
	ResourceName     string  // Название ресурса
	ResourceLocation *string // Расположение ресурса
	ResourceTypeName *string // Тип ресурса

	// AlreadyExisted выставляется, если у пользователя уже было
	// подтверждённое бронирование ровно этого интервала
	AlreadyExisted bool

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
