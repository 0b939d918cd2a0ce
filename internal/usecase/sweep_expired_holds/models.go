package sweep_expired_holds

// Триггеры запуска чистки
const (
	TriggerTicker = "ticker"
	TriggerHTTP   = "http"
)

// Result итог одного прохода чистильщика
type Result struct {
	VenuesScanned int `json:"venuesScanned"`
	HoldsRemoved  int `json:"holdsRemoved"`
	Errors        int `json:"errors"`
}
