package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// decimals are compared as numbers, so gt/gte/lte work on them
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		d, ok := v.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})
}

// Validate struct fields; keys are json field names.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"non_field_errors": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

// DecodeJSON fills the flat struct pointed to by v from a JSON object,
// decoding field by field so that each unknown or mistyped field is reported
// under its own name. Validation tags run only once decoding succeeds.
func DecodeJSON(data []byte, v interface{}) map[string]string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return map[string]string{"non_field_errors": "Invalid data. Expected a JSON object."}
	}

	rv := reflect.ValueOf(v).Elem()
	index := jsonFields(rv.Type())

	out := map[string]string{}
	for name, msg := range raw {
		i, ok := index[name]
		if !ok {
			out[name] = "Unknown field."
			continue
		}
		field := rv.Field(i)
		if err := json.Unmarshal(msg, field.Addr().Interface()); err != nil {
			out[name] = typeMessage(field.Type())
		}
	}
	if len(out) > 0 {
		return out
	}
	return Validate(v)
}

func jsonFields(t reflect.Type) map[string]int {
	out := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		out[name] = i
	}
	return out
}

var (
	uuidType    = reflect.TypeOf(uuid.UUID{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

func typeMessage(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch {
	case t == uuidType:
		return "Must be a valid UUID."
	case t == decimalType:
		return "A valid number is required."
	}
	switch t.Kind() {
	case reflect.String:
		return "Not a valid string."
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	default:
		return "Invalid value."
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "datetime":
		return "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	default:
		return "Invalid value (" + fe.Tag() + ")."
	}
}
