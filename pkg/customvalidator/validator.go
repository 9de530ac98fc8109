package customvalidator

import (
	"reflect"
	"regexp"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps validator.Validate for use as echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates the validator with null-type support and the custom rules
// registered. Registration failures abort startup.
func New() *CustomValidator {
	v := validator.New()

	registerNullTypes(v)

	if err := RegisterCustomValidations(v); err != nil {
		panic("failed to register custom validation rules: " + err.Error())
	}

	return &CustomValidator{validator: v}
}

func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("e164_PH", isPhilippinePhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("time_slot", isValidTimeSlot); err != nil {
		return err
	}
	if err := v.RegisterValidation("date_not_past", isDateNotPast); err != nil {
		return err
	}
	return nil
}

func isPhilippinePhoneNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^(\+639|09)\d{9}$`)
	return re.MatchString(fl.Field().String())
}

func isValidTimeSlot(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "morning", "afternoon", "fullday":
		return true
	}
	return false
}

// isDateNotPast accepts YYYY-MM-DD dates from today onwards.
func isDateNotPast(fl validator.FieldLevel) bool {
	d, err := time.Parse("2006-01-02", fl.Field().String())
	if err != nil {
		return false
	}
	y, m, day := time.Now().Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return !d.Before(today)
}

// registerNullTypes teaches the validator to look inside null.String and
// friends so `omitempty` and string rules behave as expected.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok {
			if val.Valid {
				return val.String
			}
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Int); ok {
			if val.Valid {
				return val.Int
			}
		}
		return nil
	}, null.Int{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok {
			if val.Valid {
				return val.Time
			}
		}
		return nil
	}, null.Time{})
}
