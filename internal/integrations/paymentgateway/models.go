package paymentgateway

import (
	"time"

	"github.com/shopspring/decimal"
)

// VerificationResult результат проверки платежа в шлюзе
// Единственный доверенный источник статуса и суммы платежа:
// суммы, присланные клиентом, никогда не используются
type VerificationResult struct {
	TransactionID string          `json:"transaction_id"`
	Verified      bool            `json:"verified"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaidAt        time.Time       `json:"paid_at"`
}

// ErrorResponse модель ошибки от платежного шлюза
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
