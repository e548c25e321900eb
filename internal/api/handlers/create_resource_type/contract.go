package create_resource_type

import (
	"context"

	"github.com/shoemant/strata-web/internal/service/resources/models"
)

type ResourceService interface {
	CreateType(ctx context.Context, req *models.CreateTypeRequest) (*models.ResourceTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
