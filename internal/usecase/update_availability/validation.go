package update_availability

import (
	"fmt"
	"time"

	"github.com/shoemant/strata-web/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	for i := range req.Windows {
		if err := validateWindow(&req.Windows[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateWindow проверяет одно окно доступности
// Отклоняет окна, которые никогда не должны дойти до материализации:
// start >= end, некорректный interval, неизвестный weekday
func validateWindow(w *WindowInput) error {
	if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d is out of range 0-6", ErrInvalidWindow, w.Weekday)
	}

	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidWindow, err)
	}

	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidWindow, err)
	}

	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWindow, w.StartTime, w.EndTime)
	}

	if w.IntervalMinutes <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %d", ErrInvalidWindow, w.IntervalMinutes)
	}

	if w.IntervalMinutes < domain.MinIntervalMinutes || w.IntervalMinutes > domain.MaxIntervalMinutes {
		return fmt.Errorf("%w: interval %d is out of range %d-%d minutes",
			ErrInvalidWindow, w.IntervalMinutes, domain.MinIntervalMinutes, domain.MaxIntervalMinutes)
	}

	return nil
}
