package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the tag-based validation rules on a request body
// and flattens the failures into field -> message form.
func ValidateStruct(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": err.Error()}
	}

	failures := make(map[string]string, len(errs))
	for _, fe := range errs {
		failures[strings.ToLower(fe.Field())] = "failed on the '" + fe.Tag() + "' rule"
	}
	return failures
}
