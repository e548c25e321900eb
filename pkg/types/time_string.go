package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени (ожидается HH:MM)
	ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")
)

// TimeString время суток в формате "HH:MM" (например, "09:30")
// Используется для времени начала слотов и границ окон доступности
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= 24*60 {
		return "", fmt.Errorf("%w: %d minutes is out of day range", ErrInvalidTimeString, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперёд
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	base, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(base + minutes)
}

// IsBefore возвращает true, если t строго раньше other
// Формат "HH:MM" с ведущими нулями сравнивается лексикографически корректно
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Scan реализует sql.Scanner для чтения из колонок TIME / TEXT
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, value)
	}
}

func (t *TimeString) scanString(s string) error {
	// Postgres отдаёт TIME как "HH:MM:SS" - обрезаем секунды
	if len(s) > len(timeLayout) {
		s = s[:len(timeLayout)]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}
