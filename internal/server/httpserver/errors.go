package httpserver

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/aycode/internal/common"
)

// errorStatus is the single mapping from service errors to HTTP responses.
// Anything unrecognised is reported as an internal error without detail.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrTokenMissing), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, common.ErrorUnauthorized.Error()
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, common.ErrorAlreadyExists.Error()
	case errors.Is(err, common.ErrSubjectNotFound):
		return http.StatusNotFound, common.ErrSubjectNotFound.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, common.ErrorNotFound.Error()
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, common.ErrorForbidden.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
