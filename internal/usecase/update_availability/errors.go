package update_availability

import (
	"errors"
	"fmt"

	"github.com/shoemant/strata-web/internal/infra/storage"
)

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("update_availability: resource not found")

	// ErrInvalidWindow возвращается при некорректном окне доступности
	// (start >= end, interval <= 0 или вне допустимых границ)
	ErrInvalidWindow = errors.New("update_availability: invalid availability window")

	// ErrAccessDenied возвращается, когда пользователь не является
	// менеджером здания ресурса
	ErrAccessDenied = errors.New("update_availability: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_availability: invalid input data")

	// ErrStorageUnavailable возвращается при недоступности хранилища;
	// такие ошибки переживаемы, запрос можно повторить позже
	ErrStorageUnavailable = errors.New("update_availability: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_availability: internal error")
)

// wrapStorage классифицирует ошибку нижнего слоя: отказ ввода-вывода
// хранилища отдаётся как ErrStorageUnavailable, остальное как ErrInternal
func wrapStorage(msg string, err error) error {
	if storage.IsUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
