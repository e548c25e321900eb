package storage

import (
	"database/sql/driver"
	"errors"

	"github.com/shoemant/strata-web/internal/infra/storage/availability"
	"github.com/shoemant/strata-web/internal/infra/storage/booking"
	"github.com/shoemant/strata-web/internal/infra/storage/resource"
)

// IsUnavailable сообщает, что ошибка вызвана отказом ввода-вывода хранилища,
// а не логикой приложения. Такие ошибки переживаемы: клиент может повторить
// запрос, когда база данных снова доступна
func IsUnavailable(err error) bool {
	return errors.Is(err, availability.ErrExecQuery) ||
		errors.Is(err, booking.ErrExecQuery) ||
		errors.Is(err, resource.ErrExecQuery) ||
		errors.Is(err, driver.ErrBadConn)
}
