package apiclient

import (
	"errors"
	"fmt"
	"time"
)

// AuthError -- учётные данные отвергнуты API (401/403). Повторять бессмысленно.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth rejected: status %d: %s", e.Status, e.Body)
}

// RateLimitError -- HTTP 429. Клиент выдерживает паузу и повторяет запрос
// ограниченное число раз.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

// TransientError -- сетевая ошибка либо 5xx. Запрос повторяется с задержкой.
type TransientError struct {
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient failure: %v", e.Err)
	}
	return fmt.Sprintf("transient failure: status %d", e.Status)
}

func (e *TransientError) Unwrap() error { return e.Err }

// ItemError -- отказ API по отдельной позиции внутри успешного батча.
// В ошибку запуска не превращается, попадает только в отчёт.
type ItemError struct {
	OfferID string
	Code    string
	Message string
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %s rejected: %s %s", e.OfferID, e.Code, e.Message)
}

// IsRetryable сообщает, имеет ли смысл повторять запрос.
func IsRetryable(err error) bool {
	var rateErr *RateLimitError
	var transientErr *TransientError
	return errors.As(err, &rateErr) || errors.As(err, &transientErr)
}
