package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

// respondError maps domain sentinel errors to HTTP status codes. Anything
// unrecognized is logged with full detail and returned as a generic 500.
func respondError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domerrors.ErrPasswordMismatch),
		errors.Is(err, domerrors.ErrEmailTaken),
		errors.Is(err, domerrors.ErrUsernameTaken),
		errors.Is(err, domerrors.ErrEmptyTitle),
		errors.Is(err, domerrors.ErrTitleTooLong),
		errors.Is(err, domerrors.ErrDueDateInPast),
		errors.Is(err, domerrors.ErrInvalidPriority),
		errors.Is(err, domerrors.ErrInvalidRole),
		errors.Is(err, domerrors.ErrSelfRoleChange):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, err.Error())
	case errors.Is(err, domerrors.ErrForbidden):
		writeErr(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, domerrors.ErrUserNotFound),
		errors.Is(err, domerrors.ErrTaskNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domerrors.ErrAccountLocked):
		writeErr(w, http.StatusTooManyRequests, ErrCodeAccountLocked, err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
