package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	RegisterNumberPattern = regexp.MustCompile(`^[A-Z0-9]{5,20}$`)
	MobileNumberPattern   = regexp.MustCompile(`^[0-9]{10}$`)
)

// New returns a validator with the custom rules registered. It reads
// `validate` struct tags.
func New() *validator.Validate {
	v := validator.New()
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

// Register adds the regnum and mobile rules to v. Gin's binding engine is
// passed through here too so `binding` tags can use them.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("regnum", func(fl validator.FieldLevel) bool {
		return RegisterNumberPattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return MobileNumberPattern.MatchString(fl.Field().String())
	})
}

// Message turns validator errors into one readable sentence per failing
// field. Other errors are returned as-is.
func Message(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		field := lowerFirst(e.Field())
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", field))
		case "regnum":
			msgs = append(msgs, "Invalid register number format")
		case "mobile":
			msgs = append(msgs, "Invalid mobile number")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", field, e.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s cannot be less than %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(msgs, ", ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
