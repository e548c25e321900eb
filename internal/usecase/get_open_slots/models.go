package get_open_slots

import (
	"time"

	"github.com/shoemant/strata-web/pkg/types"
)

// Request модель запроса на получение слотов ресурса на дату
type Request struct {
	ResourceID int64     // ID ресурса
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов и их занятостью
type Response struct {
	ResourceID int64     // ID ресурса
	Date       time.Time // Дата, на которую запрашивались слоты
	Mode       string    // Режим бронирования ресурса: slot или interval
	Slots      []Slot    // Сетка слотов с занятостью
}

// Slot модель слота с занятостью на конкретную дату
// Для free-form ресурсов это клетка отображаемой сетки, а не бронируемая
// единица: бронируются произвольные интервалы
type Slot struct {
	StartTime       types.TimeString // Время начала (например, "09:30")
	EndTime         types.TimeString // Время конца
	DurationMinutes int              // Длительность в минутах
	AvailableSpots  int              // Количество свободных мест
	TotalSpots      int              // Общее количество мест
	TimeLabel       string           // Стабильная метка для отображения
}
