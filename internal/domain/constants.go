package domain

// Default configuration values
const (
	// DefaultSlotCapacity вместимость слота для ресурсов без total_capacity
	DefaultSlotCapacity = 1

	// DefaultDisplayStepMinutes шаг сетки при отображении свободных
	// интервалов free-form ресурса
	DefaultDisplayStepMinutes = 60
)

// Business validation constants
const (
	MinIntervalMinutes = 5
	MaxIntervalMinutes = 480 // 8 hours

	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelledStatuses список статусов, не удерживающих вместимость
// Используется при подсчёте занятости слотов и проверке пересечений
var CancelledStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByManager,
}
