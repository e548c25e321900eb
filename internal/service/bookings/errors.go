package bookings

import (
	"errors"
	"fmt"

	"github.com/shoemant/strata-web/internal/infra/storage"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrResourceNotFound возвращается, когда ресурс бронирования не найден
	ErrResourceNotFound = errors.New("resource not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidStatus возвращается при некорректном статусе в фильтре
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStorageUnavailable возвращается при недоступности хранилища;
	// такие ошибки переживаемы, запрос можно повторить позже
	ErrStorageUnavailable = errors.New("service: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// wrapStorage классифицирует ошибку нижнего слоя: отказ ввода-вывода
// хранилища отдаётся как ErrStorageUnavailable, остальное как ErrInternal
func wrapStorage(msg string, err error) error {
	if storage.IsUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
