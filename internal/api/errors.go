package api

import (
	"errors"
	"fmt"
)

// ErrShape — ответ от бэкенда пришёл, но его форма не соответствует
// ожидаемой. Отличаем от пустого результата: пустой список — не ошибка.
var ErrShape = errors.New("unexpected response shape")

// APIError — осмысленный отказ бэкенда: неуспешный envelope или не-2xx.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: backend returned status %d", e.Status)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// IsNotFound — бэкенд ответил 404 на запрошенную сущность.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

// IsBadRequest — бэкенд отклонил запрос как некорректный (400).
func IsBadRequest(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 400
}
