package update_availability

import (
	"time"

	"github.com/shoemant/strata-web/pkg/types"
)

// WindowInput одно окно доступности в запросе
type WindowInput struct {
	Weekday         time.Weekday     // 0 = Sunday ... 6 = Saturday
	StartTime       types.TimeString // время открытия, например "09:00"
	EndTime         types.TimeString // время закрытия, например "18:00"
	IntervalMinutes int              // длительность слота в минутах
}

// Request модель запроса на замену окон доступности ресурса
type Request struct {
	UserID     int64         // ID менеджера, выполняющего изменение
	ResourceID int64         // ID ресурса
	Windows    []WindowInput // Полный новый набор окон (замена, не patch)
}

// Response модель ответа с результатом перегенерации
type Response struct {
	ResourceID    int64    // ID ресурса
	WindowCount   int      // Количество сохранённых окон
	SlotCount     int      // Количество материализованных слотов
	OrphanedCount int64    // Бронирования, помеченные как осиротевшие
	Warnings      []string // Конфигурационные предупреждения (пересечения окон и т.п.)
}
