package create_interval_booking

import (
	"context"

	bookInterval "github.com/shoemant/strata-web/internal/usecase/book_interval"
)

type BookIntervalUseCase interface {
	Execute(ctx context.Context, req *bookInterval.Request) (*bookInterval.Response, error)
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
