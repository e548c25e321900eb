package get_resource

import (
	"context"

	"github.com/shoemant/strata-web/internal/service/resources/models"
)

type ResourceService interface {
	GetByID(ctx context.Context, id int64) (*models.ResourceResponse, error)
	GetAvailability(ctx context.Context, resourceID int64) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
