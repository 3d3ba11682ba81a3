package utils

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	appErrors "github.com/aaravmahajanofficial/tutoring-cart/internal/errors"
	"github.com/aaravmahajanofficial/tutoring-cart/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes and validates the body into dest, writing the
// error response itself when either step fails.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		response.Error(w, appErrors.BadRequestError("Invalid input data"))
		return false
	}

	return true
}

// ParseProductID reads a positive integer path value.
func ParseProductID(r *http.Request, name string) (int64, error) {

	raw := r.PathValue(name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.BadRequestError("Invalid product id").WithDetail("product id must be a positive integer")
	}

	return id, nil
}

// ParseDateQuery reads an optional YYYY-MM-DD query parameter. A missing
// parameter yields the zero time.
func ParseDateQuery(r *http.Request, name string) (time.Time, error) {

	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}

	date, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, appErrors.BadRequestError("Invalid date").WithDetail("date must be formatted as YYYY-MM-DD")
	}

	return date, nil
}
