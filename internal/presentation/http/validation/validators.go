package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/autospa/autospa-api/internal/domain/billing"
	"github.com/autospa/autospa-api/pkg/apperror"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// vehicleNumberPattern accepts plates such as "KA01AB1234" or "KA 01 AB 1234".
var vehicleNumberPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9 -]{2,19}$`)

// Register adds the shop's custom tags to gin's validator engine. It reports
// json field names in errors instead of Go field names.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validation: gin validator engine is not go-playground/validator")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	if err := v.RegisterValidation("vehicle_no", vehicleNumber); err != nil {
		return err
	}
	return v.RegisterValidation("payment_method", paymentMethod)
}

func vehicleNumber(fl validator.FieldLevel) bool {
	s := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	return vehicleNumberPattern.MatchString(s)
}

func paymentMethod(fl validator.FieldLevel) bool {
	_, err := billing.ParsePaymentMethod(fl.Field().String())
	return err == nil
}

// FieldErrors converts a binding error into per-field messages. It returns
// nil when err is not a validation failure, e.g. malformed JSON.
func FieldErrors(err error) []apperror.FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make([]apperror.FieldError, 0, len(ve))
	for _, fe := range ve {
		out = append(out, apperror.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "vehicle_no":
		return "must be a valid vehicle number"
	case "payment_method":
		return "must be cash, card or upi"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
