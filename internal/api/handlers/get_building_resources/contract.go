package get_building_resources

import (
	"context"

	"github.com/shoemant/strata-web/internal/service/resources/models"
)

type ResourceService interface {
	GetByBuilding(ctx context.Context, buildingID int64, activeOnly bool) (*models.ResourceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
