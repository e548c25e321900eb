package book_slot

import (
	"errors"
	"fmt"

	"github.com/shoemant/strata-web/internal/infra/storage"
)

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("book_slot: resource not found")

	// ErrResourceInactive возвращается, когда ресурс деактивирован менеджером
	ErrResourceInactive = errors.New("book_slot: resource is inactive")

	// ErrWrongMode возвращается, когда ресурс бронируется произвольными интервалами
	ErrWrongMode = errors.New("book_slot: resource is booked by intervals, not slots")

	// ErrSlotNotFound возвращается, когда слот с таким ключом не существует
	ErrSlotNotFound = errors.New("book_slot: slot not found")

	// ErrSlotFull возвращается, когда все места в слоте на эту дату заняты
	ErrSlotFull = errors.New("book_slot: slot is full")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("book_slot: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_slot: invalid input data")

	// ErrStorageUnavailable возвращается при недоступности хранилища;
	// такие ошибки переживаемы, запрос можно повторить позже
	ErrStorageUnavailable = errors.New("book_slot: storage unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)

// wrapStorage классифицирует ошибку нижнего слоя: отказ ввода-вывода
// хранилища отдаётся как ErrStorageUnavailable, остальное как ErrInternal
func wrapStorage(msg string, err error) error {
	if storage.IsUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, msg, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
