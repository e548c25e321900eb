package get_building_bookings

import (
	"strconv"
	"time"

	"github.com/shoemant/strata-web/internal/domain"
	"github.com/shoemant/strata-web/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров
func ToServiceRequest(
	buildingID, userID int64,
	resourceIDStr, fromStr, toStr, includeCancelledStr string,
) (*models.GetBuildingBookingsRequest, error) {
	req := &models.GetBuildingBookingsRequest{
		UserID:     userID,
		BuildingID: buildingID,
	}

	if resourceIDStr != "" {
		resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ResourceID = &resourceID
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
