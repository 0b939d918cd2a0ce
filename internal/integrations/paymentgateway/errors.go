package paymentgateway

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда транзакция не найдена в шлюзе
	ErrPaymentNotFound = errors.New("payment transaction not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")
)
