package api

import "fmt"

// NetworkError сигнализирует о транспортном сбое или ответе, который
// невозможно разобрать там, где ожидался успешный ответ.
type NetworkError struct {
	Err error
}

// Error возвращает описание ошибки.
func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error: %v", e.Err)
	}
	return "network error"
}

// Unwrap возвращает исходную ошибку.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AuthError сигнализирует о явном отказе сервиса (статус вне успешного).
// Message содержит сообщение сервера либо сообщение по умолчанию операции.
type AuthError struct {
	Message string
}

// Error возвращает сообщение об отказе.
func (e *AuthError) Error() string {
	return e.Message
}
