package book_interval

import (
	"errors"
	"fmt"

	"github.com/shoemant/strata-web/internal/infra/storage"
)

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("book_interval: resource not found")

	// ErrResourceInactive возвращается, когда ресурс деактивирован менеджером
	ErrResourceInactive = errors.New("book_interval: resource is inactive")

	// ErrWrongMode возвращается, когда ресурс бронируется фиксированными слотами
	ErrWrongMode = errors.New("book_interval: resource is booked by slots, not intervals")

	// ErrOutsideAvailability возвращается, когда интервал не покрыт
	// ни одним окном доступности ресурса
	ErrOutsideAvailability = errors.New("book_interval: interval is outside availability windows")

	// ErrIntervalConflict возвращается, когда интервал пересекается
	// с существующим подтверждённым бронированием
	ErrIntervalConflict = errors.New("book_interval: interval conflicts with an existing booking")

	// ErrInvalidInterval возвращается при некорректных границах интервала
	ErrInvalidInterval = errors.New("book_interval: invalid interval")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_interval: invalid input data")

	// ErrStorageUnavailable возвращается при недоступности хранилища;
	// такие ошибки переживаемы, запрос можно повторить позже
	ErrStorageUnavailable = errors.New("book_interval: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_interval: internal error")
)

// wrapStorage классифицирует ошибку нижнего слоя: отказ ввода-вывода
// хранилища отдаётся как ErrStorageUnavailable, остальное как ErrInternal
func wrapStorage(msg string, err error) error {
	if storage.IsUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
