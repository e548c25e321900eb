package models

import (
	"time"

	"github.com/shoemant/strata-web/internal/domain"
)

// Request модели

// CreateResourceRequest запрос на создание ресурса
type CreateResourceRequest struct {
	UserID              int64   `json:"userId"`
	BuildingID          int64   `json:"buildingId"`
	TypeID              int64   `json:"typeId"`
	Name                string  `json:"name"`
	LocationDescription *string `json:"locationDescription,omitempty"`

	// TotalCapacity null означает free-form режим: бронирования
	// произвольными интервалами без предгенерированных слотов
	TotalCapacity *int `json:"totalCapacity,omitempty"`
}

// ToDomainResource конвертирует request в domain модель
func (r *CreateResourceRequest) ToDomainResource() *domain.Resource {
	return &domain.Resource{
		BuildingID:          r.BuildingID,
		TypeID:              r.TypeID,
		Name:                r.Name,
		LocationDescription: r.LocationDescription,
		TotalCapacity:       r.TotalCapacity,
		IsActive:            true,
	}
}

// SetActiveRequest запрос на активацию или деактивацию ресурса
type SetActiveRequest struct {
	UserID   int64 `json:"userId"`
	IsActive bool  `json:"isActive"`
}

// CreateTypeRequest запрос на создание типа ресурса
type CreateTypeRequest struct {
	UserID     int64  `json:"userId"`
	BuildingID int64  `json:"buildingId"`
	Name       string `json:"name"`
}

// ToDomainResourceType конвертирует request в domain модель
func ToDomainResourceType(r *CreateTypeRequest) *domain.ResourceType {
	return &domain.ResourceType{
		BuildingID: r.BuildingID,
		Name:       r.Name,
	}
}

// Response модели

// ResourceResponse ответ с данными ресурса
type ResourceResponse struct {
	ID                  int64     `json:"id"`
	BuildingID          int64     `json:"buildingId"`
	TypeID              int64     `json:"typeId"`
	Name                string    `json:"name"`
	LocationDescription *string   `json:"locationDescription,omitempty"`
	TotalCapacity       *int      `json:"totalCapacity,omitempty"`
	Mode                string    `json:"mode"` // slot или interval
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ResourceListResponse ответ со списком ресурсов
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// ResourceTypeResponse ответ с данными типа ресурса
type ResourceTypeResponse struct {
	ID         int64  `json:"id"`
	BuildingID int64  `json:"buildingId"`
	Name       string `json:"name"`
}

// ResourceTypeListResponse ответ со списком типов ресурсов
type ResourceTypeListResponse struct {
	Types []ResourceTypeResponse `json:"types"`
}

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID              int64  `json:"id"`
	Weekday         int    `json:"weekday"` // 0 = воскресенье ... 6 = суббота
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	IntervalMinutes int    `json:"intervalMinutes"`
}

// AvailabilityResponse ответ с окнами доступности ресурса
type AvailabilityResponse struct {
	ResourceID int64            `json:"resourceId"`
	Windows    []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainResource конвертирует domain модель в DTO
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	if r == nil {
		return nil
	}

	mode := domain.ModeSlot
	if r.IsFreeForm() {
		mode = domain.ModeInterval
	}

	return &ResourceResponse{
		ID:                  r.ID,
		BuildingID:          r.BuildingID,
		TypeID:              r.TypeID,
		Name:                r.Name,
		LocationDescription: r.LocationDescription,
		TotalCapacity:       r.TotalCapacity,
		Mode:                string(mode),
		IsActive:            r.IsActive,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// FromDomainResourceList конвертирует список domain моделей в DTO
func FromDomainResourceList(resources []*domain.Resource) *ResourceListResponse {
	resp := &ResourceListResponse{
		Resources: make([]ResourceResponse, 0, len(resources)),
	}

	for _, r := range resources {
		if item := FromDomainResource(r); item != nil {
			resp.Resources = append(resp.Resources, *item)
		}
	}

	return resp
}

// FromDomainResourceType конвертирует domain модель типа в DTO
func FromDomainResourceType(t *domain.ResourceType) *ResourceTypeResponse {
	if t == nil {
		return nil
	}
	return &ResourceTypeResponse{
		ID:         t.ID,
		BuildingID: t.BuildingID,
		Name:       t.Name,
	}
}

// FromDomainResourceTypeList конвертирует список типов в DTO
func FromDomainResourceTypeList(types []*domain.ResourceType) *ResourceTypeListResponse {
	resp := &ResourceTypeListResponse{
		Types: make([]ResourceTypeResponse, 0, len(types)),
	}

	for _, t := range types {
		if item := FromDomainResourceType(t); item != nil {
			resp.Types = append(resp.Types, *item)
		}
	}

	return resp
}

// FromDomainWindows конвертирует окна доступности ресурса в DTO
func FromDomainWindows(resourceID int64, windows []*domain.AvailabilityWindow) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ResourceID: resourceID,
		Windows:    make([]WindowResponse, 0, len(windows)),
	}

	for _, w := range windows {
		resp.Windows = append(resp.Windows, WindowResponse{
			ID:              w.ID,
			Weekday:         int(w.Weekday),
			StartTime:       w.StartTime.String(),
			EndTime:         w.EndTime.String(),
			IntervalMinutes: w.IntervalMinutes,
		})
	}

	return resp
}
