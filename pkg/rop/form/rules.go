package form

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ib-77/ropsvc/pkg/rop"
)

// BaseKey holds messages that do not belong to a single field.
const BaseKey = "base"

// MessageFunc renders one failed rule as a human readable message.
type MessageFunc func(fe validator.FieldError) string

// NewValidator returns a validator that reports fields by their form, json
// or db tag name, falling back to the lower-cased Go field name.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	return v
}

func fieldName(sf reflect.StructField) string {
	for _, tag := range []string{"form", "json", "db"} {
		name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(sf.Name)
}

// DefaultMessage covers the common rule tags; anything else "is invalid".
func DefaultMessage(fe validator.FieldError) string {
	lengthy := fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map
	switch fe.Tag() {
	case "required":
		return "can't be blank"
	case "min":
		if lengthy {
			return fmt.Sprintf("is too short (minimum is %s characters)", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if lengthy {
			return fmt.Sprintf("is too long (maximum is %s characters)", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "len":
		return fmt.Sprintf("is the wrong length (should be %s characters)", fe.Param())
	case "oneof":
		return "is not included in the list"
	}
	return "is invalid"
}

// Check runs the struct rules of value and returns field -> []string
// messages, empty when every rule passed.
func Check(ctx context.Context, v *validator.Validate, value any, message MessageFunc) rop.Payload {
	if message == nil {
		message = DefaultMessage
	}

	err := v.StructCtx(ctx, value)
	if err == nil {
		return rop.Payload{}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return rop.Of(BaseKey, []string{err.Error()})
	}

	var (
		keys  []string
		byKey = map[string][]string{}
	)
	for _, fe := range fieldErrs {
		key := fe.Field()
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], message(fe))
	}

	messages := rop.Payload{}
	for _, k := range keys {
		messages = messages.With(k, byKey[k])
	}
	return messages
}

// FullMessages flattens messages into "field message" sentences. Nested
// payloads are prefixed with their parent key.
func FullMessages(messages rop.Payload) []string {
	var out []string
	messages.Each(func(key string, v any) bool {
		if nested, ok := v.(rop.Payload); ok {
			for _, m := range FullMessages(nested) {
				out = append(out, key+"."+m)
			}
			return true
		}
		for _, m := range rop.Messages(v) {
			if key == BaseKey {
				out = append(out, m)
				continue
			}
			out = append(out, key+" "+m)
		}
		return true
	})
	return out
}
