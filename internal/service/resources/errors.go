package resources

import (
	"errors"
	"fmt"

	"github.com/shoemant/strata-web/internal/infra/storage"
)

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("resource not found")

	// ErrTypeNotFound возвращается, когда тип ресурса не найден
	ErrTypeNotFound = errors.New("resource type not found")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

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
