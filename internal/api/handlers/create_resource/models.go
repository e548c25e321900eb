package create_resource

import "github.com/shoemant/strata-web/internal/service/resources/models"

// CreateResourceRequest HTTP request model
type CreateResourceRequest struct {
	BuildingID          int64   `json:"buildingId"`
	TypeID              int64   `json:"typeId"`
	Name                string  `json:"name"`
	LocationDescription *string `json:"locationDescription,omitempty"`
	TotalCapacity       *int    `json:"totalCapacity,omitempty"` // null - free-form режим
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateResourceRequest) ToServiceRequest(userID int64) *models.CreateResourceRequest {
	return &models.CreateResourceRequest{
		UserID:              userID,
		BuildingID:          r.BuildingID,
		TypeID:              r.TypeID,
		Name:                r.Name,
		LocationDescription: r.LocationDescription,
		TotalCapacity:       r.TotalCapacity,
	}
}
