package get_open_slots

import (
	"github.com/shoemant/strata-web/internal/domain"
	getOpenSlots "github.com/shoemant/strata-web/internal/usecase/get_open_slots"
)

// SlotResponse HTTP модель слота с занятостью
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
	TimeLabel       string `json:"timeLabel"`
}

// SlotsResponse HTTP модель ответа со слотами ресурса на дату
type SlotsResponse struct {
	ResourceID int64          `json:"resourceId"`
	Date       string         `json:"date"`
	Mode       string         `json:"mode"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getOpenSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
			AvailableSpots:  s.AvailableSpots,
			TotalSpots:      s.TotalSpots,
			TimeLabel:       s.TimeLabel,
		})
	}

	return &SlotsResponse{
		ResourceID: resp.ResourceID,
		Date:       resp.Date.Format(domain.DateFormat),
		Mode:       resp.Mode,
		Slots:      slots,
	}
}
