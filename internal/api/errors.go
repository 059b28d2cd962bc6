package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/service/auth"
	"github.com/withoutfanfare/developer-test/internal/store"
)

// MapErrorToStatusCode maps an error from any layer to an HTTP status.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, domain.ErrFilterTooLong):
		return http.StatusUnprocessableEntity

	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInsufficientScope):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrStoreUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes the underlying error text.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRange):
		return "end_date must be on or after start_date"
	case errors.Is(err, domain.ErrInvalidFormat):
		return "Dates must use the YYYY-MM-DD format"
	case errors.Is(err, domain.ErrFilterTooLong):
		return "user_filter must not exceed 255 characters"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case errors.Is(err, auth.ErrInsufficientScope):
		return "Token does not grant report access"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"
	case errors.Is(err, store.ErrStoreUnavailable):
		return "Report data is temporarily unavailable"
	default:
		return "An unexpected error occurred"
	}
}

// FieldErrors turns validator errors into a field -> message map keyed by
// the JSON field name.
func FieldErrors(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}
	out := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		out[jsonFieldName(fe.Field())] = validationTagMessage(fe.Tag())
	}
	return out
}

func jsonFieldName(field string) string {
	switch field {
	case "StartDate":
		return "start_date"
	case "EndDate":
		return "end_date"
	case "UserFilter":
		return "user_filter"
	default:
		return strings.ToLower(field)
	}
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "isodate":
		return "must be a date in YYYY-MM-DD format"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
