package cancel_booking

import "github.com/shoemant/strata-web/internal/service/bookings/models"

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(userID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}
