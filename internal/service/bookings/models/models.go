package models

import (
	"errors"
	"time"

	"github.com/shoemant/strata-web/internal/domain"
	"github.com/shoemant/strata-web/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetBuildingBookingsRequest запрос на получение бронирований здания
type GetBuildingBookingsRequest struct {
	UserID           int64      `json:"userId"`
	BuildingID       int64      `json:"buildingId"`
	ResourceID       *int64     `json:"resourceId,omitempty"`       // Фильтр по ресурсу (опционально)
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBuildingBookingsRequest) ToDomainFilter() domain.BuildingBookingsFilter {
	return domain.BuildingBookingsFilter{
		BuildingID:       r.BuildingID,
		ResourceID:       r.ResourceID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	ResourceID int64  `json:"resourceId"`
	Mode       string `json:"mode"` // slot или interval

	// Fixed-slot режим
	BookingDate *string `json:"bookingDate,omitempty"` // "2026-09-15"
	StartTime   *string `json:"startTime,omitempty"`   // "09:30"
	EndTime     *string `json:"endTime,omitempty"`     // "10:00"

	// Free-form режим
	StartAt *time.Time `json:"startAt,omitempty"`
	EndAt   *time.Time `json:"endAt,omitempty"`

	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	Orphaned        bool   `json:"orphaned"`

	// Денормализованные данные ресурса
	ResourceName     string  `json:"resourceName"`
	ResourceLocation *string `json:"resourceLocation,omitempty"`
	ResourceTypeName *string `json:"resourceTypeName,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		ResourceID:         b.ResourceID,
		Mode:               string(b.Mode),
		StartAt:            b.StartAt,
		EndAt:              b.EndAt,
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		Orphaned:           b.Orphaned,
		ResourceName:       b.ResourceName,
		ResourceLocation:   b.ResourceLocation,
		ResourceTypeName:   b.ResourceTypeName,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.Mode == domain.ModeSlot && b.BookingDate != nil {
		resp.BookingDate = ptr.Ptr(b.BookingDate.Format(domain.DateFormat))
		resp.StartTime = ptr.Ptr(b.SlotStartTime.String())

		if endTime, err := b.SlotEndTime(); err == nil {
			resp.EndTime = ptr.Ptr(endTime.String())
		}
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(b.CancelledAt.Format(time.RFC3339))
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusCancelledByUser,
		domain.StatusCancelledByManager,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
