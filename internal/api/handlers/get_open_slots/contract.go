package get_open_slots

import (
	"context"

	getOpenSlots "github.com/shoemant/strata-web/internal/usecase/get_open_slots"
)

type GetOpenSlotsUseCase interface {
	Execute(ctx context.Context, req *getOpenSlots.Request) (*getOpenSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
