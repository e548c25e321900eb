package create_booking

import (
	"context"

	bookSlot "github.com/shoemant/strata-web/internal/usecase/book_slot"
)

type BookSlotUseCase interface {
	Execute(ctx context.Context, req *bookSlot.Request) (*bookSlot.Response, error)
}

// AdmissionMetrics счётчик решений о допуске бронирований
type AdmissionMetrics interface {
	ObserveAdmission(mode, outcome string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
