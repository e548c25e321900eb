package create_interval_booking

import (
	"time"

	bookInterval "github.com/shoemant/strata-web/internal/usecase/book_interval"
)

// CreateIntervalBookingRequest HTTP request model
type CreateIntervalBookingRequest struct {
	ResourceID int64     `json:"resourceId"`
	StartAt    time.Time `json:"startAt"` // RFC 3339
	EndAt      time.Time `json:"endAt"`   // RFC 3339, не входит в бронирование
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"userId"`
	ResourceID       int64   `json:"resourceId"`
	StartAt          string  `json:"startAt"`
	EndAt            string  `json:"endAt"`
	DurationMinutes  int     `json:"durationMinutes"`
	Status           string  `json:"status"`
	ResourceName     string  `json:"resourceName"`
	ResourceLocation *string `json:"resourceLocation,omitempty"`
	ResourceTypeName *string `json:"resourceTypeName,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateIntervalBookingRequest) ToUseCaseRequest(userID int64) *bookInterval.Request {
	return &bookInterval.Request{
		UserID:     userID,
		ResourceID: r.ResourceID,
		StartAt:    r.StartAt,
		EndAt:      r.EndAt,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookInterval.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		UserID:           resp.UserID,
		ResourceID:       resp.ResourceID,
		StartAt:          resp.StartAt.Format(time.RFC3339),
		EndAt:            resp.EndAt.Format(time.RFC3339),
		DurationMinutes:  resp.DurationMinutes,
		Status:           resp.Status,
		ResourceName:     resp.ResourceName,
		ResourceLocation: resp.ResourceLocation,
		ResourceTypeName: resp.ResourceTypeName,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
