// internal/utils/validator.go
package utils

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern    = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phonePattern  = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
	cardPattern   = regexp.MustCompile(`^\d{16}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("notblank", validateNotBlank)
	validate.RegisterValidation("loose_email", matchString(emailPattern))
	validate.RegisterValidation("zip", matchString(zipPattern))
	validate.RegisterValidation("phone", matchString(phonePattern))
	validate.RegisterValidation("card_number", validateCardNumber)
	validate.RegisterValidation("expiry", matchString(expiryPattern))
	validate.RegisterValidation("cvv", matchString(cvvPattern))
	validate.RegisterValidation("min_trimmed", validateMinTrimmed)
	validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// decimalValue lets numeric tags such as gt=0 apply to money fields.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Card numbers are accepted with grouping spaces, e.g. "4242 4242 4242 4242".
func validateCardNumber(fl validator.FieldLevel) bool {
	return cardPattern.MatchString(strings.Join(strings.Fields(fl.Field().String()), ""))
}

func validateMinTrimmed(fl validator.FieldLevel) bool {
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= min
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return e.Field() + " is required"
	case "loose_email", "email":
		return "Please enter a valid email"
	case "min", "min_trimmed":
		if isNumber(e.Kind()) {
			return e.Field() + " must be at least " + e.Param()
		}
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		if isNumber(e.Kind()) {
			return e.Field() + " must be at most " + e.Param()
		}
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
