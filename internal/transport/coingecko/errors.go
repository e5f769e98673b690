package coingecko

import (
	"errors"
	"fmt"
)

// ErrRateNotFound в ответе нет курса для запрошенной пары.
var ErrRateNotFound = errors.New("rate not found in response")

type StatusCodeError struct {
	Code int
}

func NewStatusCodeError(code int) *StatusCodeError {
	return &StatusCodeError{Code: code}
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("Unexpected status code %d", e.Code)
}
