package domain

import "time"

// Resource represents a bookable shared unit of a building
// (gym, meeting room, parking spot)
type Resource struct {
	ID                  int64
	BuildingID          int64
	TypeID              int64
	Name                string
	LocationDescription *string

	// TotalCapacity вместимость ресурса; nil означает free-form режим -
	// бронирования произвольными интервалами без предгенерированных слотов
	TotalCapacity *int

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFreeForm returns true if the resource is booked by arbitrary
// [start,end) intervals instead of pre-materialized slots
func (r *Resource) IsFreeForm() bool {
	return r.TotalCapacity == nil
}

// SlotCapacity returns the capacity copied into each materialized slot
func (r *Resource) SlotCapacity() int {
	if r.TotalCapacity == nil || *r.TotalCapacity < 1 {
		return DefaultSlotCapacity
	}
	return *r.TotalCapacity
}

// ResourceType reference data: the kind of a resource ("Gym", "Meeting Room")
type ResourceType struct {
	ID         int64
	BuildingID int64
	Name       string
}
