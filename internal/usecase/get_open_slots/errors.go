package get_open_slots

import (
	"errors"
	"fmt"

	"github.com/shoemant/strata-web/internal/infra/storage"
)

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("get_open_slots: resource not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_open_slots: invalid input data")

	// ErrStorageUnavailable возвращается при недоступности хранилища;
	// такие ошибки переживаемы, запрос можно повторить позже
	ErrStorageUnavailable = errors.New("get_open_slots: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_open_slots: internal error")
)

// wrapStorage классифицирует ошибку нижнего слоя: отказ ввода-вывода
// хранилища отдаётся как ErrStorageUnavailable, остальное как ErrInternal
func wrapStorage(msg string, err error) error {
	if storage.IsUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
