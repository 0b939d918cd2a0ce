package identityservice

// Role роль пользователя из IdentityService
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// Actor верифицированный пользователь из IdentityService
// ManagedVenueIDs заполняется только для менеджеров
type Actor struct {
	ID              int64   `json:"id"`
	Role            Role    `json:"role"`
	ManagedVenueIDs []int64 `json:"managed_venue_ids"`
}

// ManagesVenue проверяет, управляет ли пользователь указанной площадкой
func (a *Actor) ManagesVenue(venueID int64) bool {
	if a.Role == RoleAdmin {
		return true
	}
	for _, id := range a.ManagedVenueIDs {
		if id == venueID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
