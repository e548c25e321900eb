package book_slot

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date, now time.Time) error {
	if dateOnly(date).Before(dateOnly(now)) {
		return ErrInvalidDate
	}
	return nil
}

// dateOnly обнуляет время, чтобы сравнивать только даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
