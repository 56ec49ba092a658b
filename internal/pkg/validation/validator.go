package validation

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// sqlIdentPattern accepts plain or schema-qualified identifiers (e.g. "ops.pipeline_logs").
var sqlIdentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// StructValidator is a singleton instance of the validator.
var StructValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// The table name is interpolated into SQL text, so only identifiers pass.
	_ = v.RegisterValidation("sqlident", func(fl validator.FieldLevel) bool {
		return sqlIdentPattern.MatchString(fl.Field().String())
	})
	return v
}

// ErrorResponse represents a validation error message.
type ErrorResponse struct {
	FailedField string `json:"failed_field"`
	Tag         string `json:"tag"`
	Value       string `json:"value"`
	Message     string `json:"message"`
}

// ValidateStruct performs validation on a struct.
// It returns a slice of ErrorResponse if validation fails, or nil otherwise.
func ValidateStruct(payload interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := StructValidator.Struct(payload)
	if err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{Message: err.Error()}}
		}
		for _, fe := range validationErrs {
			errors = append(errors, &ErrorResponse{
				FailedField: fe.StructNamespace(),
				Tag:         fe.Tag(),
				Value:       fmt.Sprintf("%v", fe.Value()),
				Message:     generateValidationMessage(fe),
			})
		}
	}
	return errors
}

// AsError folds validation failures into a single error, or nil.
func AsError(errs []*ErrorResponse) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return fmt.Errorf("validation failed: %s", errs[0].Message)
	}
	return fmt.Errorf("validation failed: %s (and %d more)", errs[0].Message, len(errs)-1)
}

func generateValidationMessage(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "oneof":
		return fmt.Sprintf("The %s field must be one of [%s].", field, param)
	case "sqlident":
		return fmt.Sprintf("The %s field must be a plain SQL identifier.", field)
	case "min":
		switch err.Kind() {
		case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
			return fmt.Sprintf("The %s field must have at least %s items/characters.", field, param)
		default:
			return fmt.Sprintf("The %s field must be at least %s.", field, param)
		}
	case "max":
		switch err.Kind() {
		case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
			return fmt.Sprintf("The %s field must have at most %s items/characters.", field, param)
		default:
			return fmt.Sprintf("The %s field must be at most %s.", field, param)
		}
	default:
		return fmt.Sprintf("The %s field is not valid (tag: %s).", field, err.Tag())
	}
}

// ParseQueryAndValidate parses query parameters into payload and validates it.
// It returns true on success; on failure the 400 response has already been sent.
func ParseQueryAndValidate(c *fiber.Ctx, payload interface{}) bool {
	if err := c.QueryParser(payload); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return false
	}

	validationErrors := ValidateStruct(payload)
	if validationErrors != nil {
		errorMessages := make([]string, len(validationErrors))
		for i, ve := range validationErrors {
			errorMessages[i] = ve.Message
		}
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "Validation failed",
			"details":  validationErrors,
			"messages": errorMessages,
		})
		return false
	}
	return true
}
