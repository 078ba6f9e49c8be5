package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/guardian-alarm/internal/service"
	"github.com/MKhiriev/guardian-alarm/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrForbidden:        http.StatusForbidden,
	service.ErrNotFound:         http.StatusNotFound,
	service.ErrConflict:         http.StatusConflict,
	service.ErrNotLinked:        http.StatusPreconditionFailed,
	service.ErrInvalidState:     http.StatusConflict,
	service.ErrValidationFailed: http.StatusBadRequest,

	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrChildAlreadyExists: http.StatusConflict,
	store.ErrChildNotFound:      http.StatusNotFound,
	store.ErrProfileNotFound:    http.StatusNotFound,
	store.ErrLinkNotFound:       http.StatusNotFound,
	store.ErrRecordNotFound:     http.StatusNotFound,

	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
