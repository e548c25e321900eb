package book_interval

import (
	"fmt"
	"time"

	"github.com/shoemant/strata-web/internal/domain"
	"github.com/shoemant/strata-web/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: startAt must be before endAt", ErrInvalidInterval)
	}

	// Окна доступности заданы по дням недели, поэтому интервал
	// не может пересекать полночь
	if !isSameDay(req.StartAt, req.EndAt) {
		return fmt.Errorf("%w: interval must not cross midnight", ErrInvalidInterval)
	}

	duration := int(req.EndAt.Sub(req.StartAt).Minutes())
	if duration < domain.MinIntervalMinutes {
		return fmt.Errorf("%w: interval must be at least %d minutes", ErrInvalidInterval, domain.MinIntervalMinutes)
	}
	if duration > domain.MaxIntervalMinutes {
		return fmt.Errorf("%w: interval must be at most %d minutes", ErrInvalidInterval, domain.MaxIntervalMinutes)
	}

	if req.StartAt.Before(now) {
		return fmt.Errorf("%w: interval starts in the past", ErrInvalidInterval)
	}

	return nil
}

// coveredByWindows проверяет, что интервал целиком лежит внутри одного
// окна доступности нужного дня недели
func coveredByWindows(windows []*domain.AvailabilityWindow, startAt, endAt time.Time) bool {
	weekday := startAt.Weekday()
	start := types.NewTimeString(startAt)
	end := types.NewTimeString(endAt)

	for _, w := range windows {
		if w.Weekday == weekday && w.Covers(start, end) {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
