package mailservice

import "errors"

var (
	// ErrRequestFailed возвращается при сетевой ошибке запроса
	ErrRequestFailed = errors.New("integrations.mailservice: request failed")

	// ErrUnexpectedStatus возвращается при неожиданном HTTP статусе ответа
	ErrUnexpectedStatus = errors.New("integrations.mailservice: unexpected response status")
)
