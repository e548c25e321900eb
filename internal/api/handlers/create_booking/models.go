package create_booking

import (
	"time"

	"github.com/shoemant/strata-web/internal/domain"
	bookSlot "github.com/shoemant/strata-web/internal/usecase/book_slot"
	"github.com/shoemant/strata-web/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ResourceID  int64  `json:"resourceId"`
	BookingDate string `json:"bookingDate"` // "2026-09-15"
	StartTime   string `json:"startTime"`   // "09:30"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"userId"`
	ResourceID       int64   `json:"resourceId"`
	BookingDate      string  `json:"bookingDate"`
	StartTime        string  `json:"startTime"`
	EndTime          string  `json:"endTime"`
	DurationMinutes  int     `json:"durationMinutes"`
	Status           string  `json:"status"`
	ResourceName     string  `json:"resourceName"`
	ResourceLocation *string `json:"resourceLocation,omitempty"`
	ResourceTypeName *string `json:"resourceTypeName,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*bookSlot.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookSlot.Request{
		UserID:     userID,
		ResourceID: r.ResourceID,
		Date:       bookingDate,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		UserID:           resp.UserID,
		ResourceID:       resp.ResourceID,
		BookingDate:      resp.BookingDate.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		EndTime:          resp.EndTime.String(),
		DurationMinutes:  resp.DurationMinutes,
		Status:           resp.Status,
		ResourceName:     resp.ResourceName,
		ResourceLocation: resp.ResourceLocation,
		ResourceTypeName: resp.ResourceTypeName,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
