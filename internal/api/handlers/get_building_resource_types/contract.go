package get_building_resource_types

import (
	"context"

	"github.com/shoemant/strata-web/internal/service/resources/models"
)

type ResourceService interface {
	GetTypesByBuilding(ctx context.Context, buildingID int64) (*models.ResourceTypeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
