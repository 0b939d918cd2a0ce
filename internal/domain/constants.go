package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes    = 60
	DefaultHoldTTLMinutes         = 5
	DefaultCancellationHoursLimit = 5
	DefaultAdvancePercent         = 100
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 480 // 8 hours
	MinAdvancePercent      = 0
	MaxAdvancePercent      = 100
	MaxCancellationHours   = 168 // 1 week
	MaxCustomerNameLength  = 200
	MaxBlockReasonLength   = 500
	MaxProjectionRangeDays = 62 // ограничение диапазона выборки доступности
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
