package update_availability

import (
	"time"

	updateAvailability "github.com/shoemant/strata-web/internal/usecase/update_availability"
	"github.com/shoemant/strata-web/pkg/types"
)

// WindowRequest одно окно доступности в HTTP запросе
type WindowRequest struct {
	Weekday         int    `json:"weekday"`   // 0 = воскресенье ... 6 = суббота
	StartTime       string `json:"startTime"` // "09:00"
	EndTime         string `json:"endTime"`   // "18:00"
	IntervalMinutes int    `json:"intervalMinutes"`
}

// UpdateAvailabilityRequest HTTP request model
// Набор окон заменяется целиком, это не patch
type UpdateAvailabilityRequest struct {
	Windows []WindowRequest `json:"windows"`
}

// UpdateAvailabilityResponse HTTP response model
type UpdateAvailabilityResponse struct {
	ResourceID    int64    `json:"resourceId"`
	WindowCount   int      `json:"windowCount"`
	SlotCount     int      `json:"slotCount"`
	OrphanedCount int64    `json:"orphanedCount"`
	Warnings      []string `json:"warnings,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAvailabilityRequest) ToUseCaseRequest(userID, resourceID int64) (*updateAvailability.Request, error) {
	windows := make([]updateAvailability.WindowInput, 0, len(r.Windows))
	for _, w := range r.Windows {
		startTime, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, err
		}
		endTime, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, err
		}

		windows = append(windows, updateAvailability.WindowInput{
			Weekday:         time.Weekday(w.Weekday),
			StartTime:       startTime,
			EndTime:         endTime,
			IntervalMinutes: w.IntervalMinutes,
		})
	}

	return &updateAvailability.Request{
		UserID:     userID,
		ResourceID: resourceID,
		Windows:    windows,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAvailability.Response) *UpdateAvailabilityResponse {
	return &UpdateAvailabilityResponse{
		ResourceID:    resp.ResourceID,
		WindowCount:   resp.WindowCount,
		SlotCount:     resp.SlotCount,
		OrphanedCount: resp.OrphanedCount,
		Warnings:      resp.Warnings,
	}
}
