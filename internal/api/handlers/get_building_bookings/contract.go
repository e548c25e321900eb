package get_building_bookings

import (
	"context"

	"github.com/shoemant/strata-web/internal/service/bookings/models"
)

type BookingService interface {
	GetBuildingBookings(ctx context.Context, req *models.GetBuildingBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
