package middleware

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductIDKey is the locals key under which ValidateProductID stores the
// parsed :id path parameter for the handler.
const ProductIDKey = "productID"

// fieldErrorsKey accumulates rule violations across a route's validation chain.
const fieldErrorsKey = "fieldErrors"

// validate backs the value predicates used by the body rules.
var validate = validator.New()

// FieldError describes a single validation failure for one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the body returned when request validation fails.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// BodyRule checks one field of the JSON request body and reports at most one
// violation. Rules are independent of each other: the chain evaluates every
// declared rule even after earlier ones have failed, so the caller sees all
// violations at once.
type BodyRule struct {
	Field string
	Check func(raw json.RawMessage, present bool) *FieldError
}

// ValidateProductID checks that the :id path parameter parses as an integer.
// On success the parsed value is stored in the request locals for the
// handler; on failure a violation is recorded for the aggregation gate.
// Negative integers parse, so they are not validation failures: ids are
// unsigned and auto-increment starts at 1, so a negative id names a row that
// cannot exist and is normalized to the equally never-assigned id 0, which
// the handler's store lookup reports as not found.
func ValidateProductID(c *fiber.Ctx) error {
	idParam := c.Params("id")
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		signed, signErr := strconv.ParseInt(idParam, 10, 64)
		if signErr != nil || signed >= 0 {
			appendFieldError(c, "id", "invalid ID")
			return c.Next()
		}
		id = 0
	}
	c.Locals(ProductIDKey, uint(id))
	return c.Next()
}

// ValidateProductBody parses the JSON request body once and evaluates the
// given rules in their declared order, collecting every violation. An
// unparseable body yields a single body-level violation since no field rule
// can be evaluated against it.
func ValidateProductBody(rules ...BodyRule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body map[string]json.RawMessage
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			appendFieldError(c, "body", "request body must be valid JSON")
			return c.Next()
		}
		for _, rule := range rules {
			raw, present := body[rule.Field]
			if fieldErr := rule.Check(raw, present); fieldErr != nil {
				appendFieldError(c, fieldErr.Field, fieldErr.Message)
			}
		}
		return c.Next()
	}
}

// CheckValidation is the aggregation gate terminating every validation chain.
// With one or more recorded violations the request ends here with a 400 and
// the full list; otherwise control passes to the resource handler.
func CheckValidation(c *fiber.Ctx) error {
	if errs := fieldErrors(c); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{Errors: errs})
	}
	return c.Next()
}

// NameRule requires a non-empty string name.
func NameRule() BodyRule {
	return BodyRule{Field: "name", Check: func(raw json.RawMessage, present bool) *FieldError {
		if !present || isNull(raw) {
			return &FieldError{Field: "name", Message: "name must not be empty"}
		}
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return &FieldError{Field: "name", Message: "name must be a string"}
		}
		if err := validate.Var(name, "required"); err != nil {
			return &FieldError{Field: "name", Message: "name must not be empty"}
		}
		return nil
	}}
}

// PriceRule requires a strictly positive number, with a distinct message per
// violated predicate.
func PriceRule() BodyRule {
	return BodyRule{Field: "price", Check: func(raw json.RawMessage, present bool) *FieldError {
		if !present || isNull(raw) {
			return &FieldError{Field: "price", Message: "price is required"}
		}
		var price float64
		if err := json.Unmarshal(raw, &price); err != nil {
			return &FieldError{Field: "price", Message: "price must be a number"}
		}
		if err := validate.Var(price, "gt=0"); err != nil {
			return &FieldError{Field: "price", Message: "price must be greater than zero"}
		}
		return nil
	}}
}

// AvailabilityRule requires a boolean availability flag.
func AvailabilityRule() BodyRule {
	return BodyRule{Field: "availability", Check: func(raw json.RawMessage, present bool) *FieldError {
		if !present || isNull(raw) {
			return &FieldError{Field: "availability", Message: "availability is required"}
		}
		var availability bool
		if err := json.Unmarshal(raw, &availability); err != nil {
			return &FieldError{Field: "availability", Message: "availability must be a boolean"}
		}
		return nil
	}}
}

// isNull reports whether a present body field carries a JSON null, which the
// rules treat the same as an absent field.
func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func appendFieldError(c *fiber.Ctx, field, message string) {
	c.Locals(fieldErrorsKey, append(fieldErrors(c), FieldError{Field: field, Message: message}))
}

func fieldErrors(c *fiber.Ctx) []FieldError {
	errs, _ := c.Locals(fieldErrorsKey).([]FieldError)
	return errs
}
