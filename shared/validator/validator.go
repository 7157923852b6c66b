package validator

import (
	"encoding/json"
	"fmt"
	"hotelres/shared/constant"
	"hotelres/shared/failure"
	"io"
	"reflect"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// registerCalendarDateValidation accepts "2006-01-02" strings. Empty strings are left to "required".
func registerCalendarDateValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	if value == constant.Empty {
		return true
	}

	_, err := time.Parse(constant.CalendarFormat, value)

	return err == nil
}

// jsonFieldName reports fields by their json name so messages match the request body.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return constant.Empty
	}

	if name == constant.Empty {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	if err := validate.RegisterValidation("calendardate", registerCalendarDateValidation); err != nil {
		panic(err)
	}
}

// Validate decodes a JSON request body into data and checks its struct tags.
// Both decode and validation problems come back as BadRequest failures.
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

// ValidateVar checks a single value, such as a path parameter, against tag.
func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

// IsValid reports whether data passes its struct tags, for checks that gate a
// step instead of rejecting a request.
func IsValid(data any) bool {
	return validate.Struct(data) == nil
}
