package domain

import "github.com/m04kA/SVB-ReservationService/pkg/types"

// SlotStatus статус слота в проекции доступности
type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotBlocked   SlotStatus = "BLOCKED"
	SlotBooked    SlotStatus = "BOOKED"
	SlotHeld      SlotStatus = "HELD"
	SlotReserved  SlotStatus = "RESERVED"
	SlotPast      SlotStatus = "PAST"
)

// ProjectedSlot one (date, startTime) cell of the availability view.
// Status is resolved by overlaying the exception collections with precedence
// blocked > booked > held(unexpired) > reserved > available; slots strictly
// before "now" are PAST regardless of other state.
type ProjectedSlot struct {
	Date            types.DateString
	StartTime       types.TimeString
	DurationMinutes int
	Status          SlotStatus
}

// IsBookable returns true if a hold can be placed on the slot.
// Пометка RESERVED рекомендательная и бронированию не мешает.
func (s *ProjectedSlot) IsBookable() bool {
	return s.Status == SlotAvailable || s.Status == SlotReserved
}
