package validation

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fhuszti/propshot-ms-go/internal/model"
	"github.com/fhuszti/propshot-ms-go/internal/uuid"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Grab the value of `json:"foo,omitempty"`
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			// fallback to the Go field name or skip
			return fld.Name
		}
		return name
	})

	// Validate our binary UUID wrapper through its string form
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if u, ok := field.Interface().(uuid.UUID); ok {
			return u.String()
		}
		return nil
	}, uuid.UUID{})

	_ = validate.RegisterValidation("edit_mode", func(fl validator.FieldLevel) bool {
		return model.EditMode(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("room_type", func(fl validator.FieldLevel) bool {
		return model.RoomType(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("aspect_ratio", func(fl validator.FieldLevel) bool {
		return model.AspectRatio(fl.Field().String()).Valid()
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ErrorsToJson(validationErrs error) (string, error) {
	errsMap := make(map[string]string)
	for _, fieldErr := range validationErrs.(validator.ValidationErrors) {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	errsJson, err := json.Marshal(errsMap)
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}
