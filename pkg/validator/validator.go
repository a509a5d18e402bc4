package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var clockTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Messages name fields by their label tag, falling back to the form key
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(fld.Tag.Get("schema"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		return IsClockTime(fl.Field().String())
	})
	_ = v.RegisterValidation("mindigits", func(fl validator.FieldLevel) bool {
		want, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return countPhoneDigits(fl.Field().String()) >= want
	})

	return &CustomValidator{validator: v}
}

// IsClockTime accepts HH:MM and HH:MM:SS on a 24-hour clock
func IsClockTime(value string) bool {
	return clockTimePattern.MatchString(value)
}

// countPhoneDigits returns the number of digits, or -1 when the value holds
// anything besides digits, spaces, dashes, parentheses and a leading plus
func countPhoneDigits(value string) int {
	digits := 0
	for i, r := range value {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')':
		case r == '+' && i == 0:
		default:
			return -1
		}
	}
	return digits
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Messages turns a validation error into human-readable lines in field order
func (cv *CustomValidator) Messages(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, message(e))
	}
	return messages
}

func message(e validator.FieldError) string {
	field := e.Field()
	numeric := isNumeric(e.Kind())

	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if numeric {
			return field + " must be at least " + e.Param()
		}
		return field + " must be at least " + e.Param() + " characters"
	case "max":
		if numeric {
			return field + " must be at most " + e.Param()
		}
		return field + " must be at most " + e.Param() + " characters"
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	case "lte":
		return field + " must be less than or equal to " + e.Param()
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "mindigits":
		return field + " must be at least " + e.Param() + " digits"
	case "datetime":
		return field + " must be a valid date (YYYY-MM-DD)"
	case "clocktime":
		return field + " must be a valid time (HH:MM)"
	case "url":
		return field + " must be a valid URL"
	default:
		return field + " is invalid"
	}
}

func isNumeric(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
