package shared

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/withoutfanfare/developer-test/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(domain.DateLayout, fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateRequest validates v against its struct tags. Besides the
// built-in tags, "isodate" accepts YYYY-MM-DD strings.
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}
