package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// SlotConfig recurrence configuration of a venue's bookable grid.
// Candidate slots are generated from StartTime to EndTime with a fixed
// SlotDurationMinutes step on every weekday listed in DaysOfWeek.
type SlotConfig struct {
	StartTime              types.TimeString `json:"startTime"`
	EndTime                types.TimeString `json:"endTime"`
	SlotDurationMinutes    int              `json:"slotDurationMinutes"`
	DaysOfWeek             []time.Weekday   `json:"daysOfWeek"`
	Timezone               string           `json:"timezone"`
	PricePerSlot           decimal.Decimal  `json:"pricePerSlot"`
	AdvancePercent         int              `json:"advancePercent"`
	CancellationHoursLimit int              `json:"cancellationHoursLimit"`
}

// Location returns the venue's timezone, falling back to UTC
func (c *SlotConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsWorkingDay returns true if the venue generates slots on the given weekday
func (c *SlotConfig) IsWorkingDay(day time.Weekday) bool {
	for _, d := range c.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// BlockedEntry manager-blocked slot, highest precedence exception
type BlockedEntry struct {
	Date      types.DateString `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	Reason    *string          `json:"reason,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// HoldEntry time-bounded exclusive claim on a slot while a customer pays.
// An entry whose HoldExpiresAt is in the past is treated everywhere as if it
// does not exist, whether or not it has been physically swept yet.
type HoldEntry struct {
	Date          types.DateString `json:"date"`
	StartTime     types.TimeString `json:"startTime"`
	UserID        int64            `json:"userId"`
	BookingID     uuid.UUID        `json:"bookingId"`
	CreatedAt     time.Time        `json:"createdAt"`
	HoldExpiresAt time.Time        `json:"holdExpiresAt"`
}

// IsExpired returns true if the hold is no longer valid at the given instant
func (h *HoldEntry) IsExpired(now time.Time) bool {
	return !h.HoldExpiresAt.After(now)
}

// BelongsTo returns true if the hold was placed by the given user
func (h *HoldEntry) BelongsTo(userID int64) bool {
	return h.UserID == userID
}

// BookingType способ создания бронирования
type BookingType string

const (
	BookingTypeOnline   BookingType = "online"
	BookingTypePhysical BookingType = "physical"
)

// BookingEntry confirmed slot occupation inside the venue aggregate
type BookingEntry struct {
	Date          types.DateString `json:"date"`
	StartTime     types.TimeString `json:"startTime"`
	BookingID     uuid.UUID        `json:"bookingId"`
	BookingType   BookingType      `json:"bookingType"`
	Status        string           `json:"status"` // always "confirmed"
	CustomerName  *string          `json:"customerName,omitempty"`
	CustomerPhone *string          `json:"customerPhone,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ReservedEntry advisory mark, lowest precedence, never blocks booking
type ReservedEntry struct {
	Date      types.DateString `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	Note      *string          `json:"note,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// VenueSlotState aggregate holding one venue's recurrence configuration and
// its four exception collections. The record is the unit of serialization:
// it is mutated only through the reservation engine with an optimistic
// version check, so all slot mutations for one venue are linearized.
//
// Invariant: for any (date, startTime) at most one entry exists across
// Blocked, Bookings and unexpired Held entries.
type VenueSlotState struct {
	VenueID   int64
	Config    SlotConfig
	Blocked   []BlockedEntry
	Bookings  []BookingEntry
	Held      []HoldEntry
	Reserved  []ReservedEntry
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FindBlocked возвращает блокировку слота, если она есть
func (s *VenueSlotState) FindBlocked(date types.DateString, start types.TimeString) *BlockedEntry {
	for i := range s.Blocked {
		if s.Blocked[i].Date == date && s.Blocked[i].StartTime == start {
			return &s.Blocked[i]
		}
	}
	return nil
}

// FindBooking возвращает подтвержденное бронирование слота, если оно есть
func (s *VenueSlotState) FindBooking(date types.DateString, start types.TimeString) *BookingEntry {
	for i := range s.Bookings {
		if s.Bookings[i].Date == date && s.Bookings[i].StartTime == start {
			return &s.Bookings[i]
		}
	}
	return nil
}

// FindHold возвращает удержание слота (включая протухшее), если оно есть
func (s *VenueSlotState) FindHold(date types.DateString, start types.TimeString) *HoldEntry {
	for i := range s.Held {
		if s.Held[i].Date == date && s.Held[i].StartTime == start {
			return &s.Held[i]
		}
	}
	return nil
}

// FindReserved возвращает рекомендательную пометку слота, если она есть
func (s *VenueSlotState) FindReserved(date types.DateString, start types.TimeString) *ReservedEntry {
	for i := range s.Reserved {
		if s.Reserved[i].Date == date && s.Reserved[i].StartTime == start {
			return &s.Reserved[i]
		}
	}
	return nil
}

// AddHold добавляет удержание слота
func (s *VenueSlotState) AddHold(entry HoldEntry) {
	s.Held = append(s.Held, entry)
}

// RemoveHold удаляет удержание слота; возвращает true, если запись была
func (s *VenueSlotState) RemoveHold(date types.DateString, start types.TimeString) bool {
	for i := range s.Held {
		if s.Held[i].Date == date && s.Held[i].StartTime == start {
			s.Held = append(s.Held[:i], s.Held[i+1:]...)
			return true
		}
	}
	return false
}

// AddBooking добавляет подтвержденное бронирование слота
func (s *VenueSlotState) AddBooking(entry BookingEntry) {
	s.Bookings = append(s.Bookings, entry)
}

// RemoveBooking удаляет бронирование слота; возвращает true, если запись была
func (s *VenueSlotState) RemoveBooking(date types.DateString, start types.TimeString) bool {
	for i := range s.Bookings {
		if s.Bookings[i].Date == date && s.Bookings[i].StartTime == start {
			s.Bookings = append(s.Bookings[:i], s.Bookings[i+1:]...)
			return true
		}
	}
	return false
}

// AddBlocked добавляет блокировку слота
func (s *VenueSlotState) AddBlocked(entry BlockedEntry) {
	s.Blocked = append(s.Blocked, entry)
}

// RemoveBlocked удаляет блокировку слота; возвращает true, если запись была
func (s *VenueSlotState) RemoveBlocked(date types.DateString, start types.TimeString) bool {
	for i := range s.Blocked {
		if s.Blocked[i].Date == date && s.Blocked[i].StartTime == start {
			s.Blocked = append(s.Blocked[:i], s.Blocked[i+1:]...)
			return true
		}
	}
	return false
}

// AddReserved добавляет рекомендательную пометку слота
func (s *VenueSlotState) AddReserved(entry ReservedEntry) {
	s.Reserved = append(s.Reserved, entry)
}

// RemoveReserved удаляет рекомендательную пометку; возвращает true, если запись была
func (s *VenueSlotState) RemoveReserved(date types.DateString, start types.TimeString) bool {
	for i := range s.Reserved {
		if s.Reserved[i].Date == date && s.Reserved[i].StartTime == start {
			s.Reserved = append(s.Reserved[:i], s.Reserved[i+1:]...)
			return true
		}
	}
	return false
}

// PurgeExpiredHolds удаляет все протухшие удержания; возвращает число удаленных
func (s *VenueSlotState) PurgeExpiredHolds(now time.Time) int {
	kept := s.Held[:0]
	removed := 0
	for _, h := range s.Held {
		if h.IsExpired(now) {
			removed++
			continue
		}
		kept = append(kept, h)
	}
	s.Held = kept
	return removed
}
