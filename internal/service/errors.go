package service

import (
	"errors"
	"net/http"

	"github.com/ofwirawan/verbose-garbonzo-tariff-sub000/internal/tariff"
)

// Stable error codes exposed on the API so clients can branch without
// parsing messages.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeRateNotFound   = "RATE_NOT_FOUND"
	CodeWeightRequired = "WEIGHT_REQUIRED"
	CodeInvalidRate    = "INVALID_RATE"
	CodeInternal       = "INTERNAL_ERROR"
)

// ErrorCode maps an engine failure to its API error code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, tariff.ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, tariff.ErrRateNotFound):
		return CodeRateNotFound
	case errors.Is(err, tariff.ErrWeightRequired):
		return CodeWeightRequired
	case errors.Is(err, tariff.ErrInvalidRate):
		return CodeInvalidRate
	default:
		return CodeInternal
	}
}

// HTTPStatus maps an engine failure to its HTTP status. InvalidRate is a
// data-integrity violation upstream of the engine, so it reports as 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, tariff.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, tariff.ErrRateNotFound):
		return http.StatusNotFound
	case errors.Is(err, tariff.ErrWeightRequired):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
