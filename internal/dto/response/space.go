package response

import (
	"cowork-booking/internal/data/entity"
	"cowork-booking/internal/wizard"
)

type SpaceResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Location      string              `json:"location"`
	Capacity      int                 `json:"capacity"`
	PricePerHour  float64             `json:"price_per_hour"`
	PricePerDay   float64             `json:"price_per_day"`
	PricePerWeek  float64             `json:"price_per_week"`
	PricePerMonth float64             `json:"price_per_month"`
	Features      []string            `json:"features"`
	OpeningHours  entity.OpeningHours `json:"opening_hours"`
}

type SlotsResponse struct {
	SpaceID            string            `json:"space_id,omitempty"`
	Date               string            `json:"date"`
	Closed             bool              `json:"closed"`
	Slots              []wizard.TimeSlot `json:"slots"`
	FirstAvailableTime string            `json:"first_available_time,omitempty"`
}

func SpaceToResponse(space *entity.Space) SpaceResponse {
	features := space.Features
	if features == nil {
		features = []string{}
	}
	return SpaceResponse{
		ID:            space.ID.String(),
		Name:          space.Name,
		Location:      space.Location,
		Capacity:      space.Capacity,
		PricePerHour:  space.PricePerHour,
		PricePerDay:   space.PricePerDay,
		PricePerWeek:  space.PricePerWeek,
		PricePerMonth: space.PricePerMonth,
		Features:      features,
		OpeningHours:  space.OpeningHours,
	}
}
