package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Meeting IDs come from external systems; keep the charset conservative so
// they stay safe in URLs and object storage keys.
var meetingIDRe = regexp.MustCompile(`^[A-Za-z0-9._-]{1,255}$`)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("meeting_id", func(fl validator.FieldLevel) bool {
		return meetingIDRe.MatchString(fl.Field().String())
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
