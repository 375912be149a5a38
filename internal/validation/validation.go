// Package validation wraps go-playground/validator and translates its
// errors into per-field messages suitable for the JSON error envelope the
// handlers return.
package validation

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var global *validator.Validate

func init() {
	global = New()
}

// New constructs a Validate instance with the project's custom rules
// registered.  Struct fields are reported under their json tag name so the
// messages line up with the payload the client actually sent.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors maps a field name to a human-readable message.  The zero map
// means the payload validated cleanly.
type FieldErrors map[string]string

// Error implements the error interface with the first message, so a
// FieldErrors value can travel through ordinary error returns.
func (fe FieldErrors) Error() string {
	for f, msg := range fe {
		return f + ": " + msg
	}
	return "validation failed"
}

// Validate checks the given struct and returns FieldErrors when any rule
// fails, or nil.
func Validate(ctx context.Context, s any) FieldErrors {
	err := global.StructCtx(ctx, s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"_": "invalid payload"}
	}
	fe := make(FieldErrors, len(verrs))
	for _, ve := range verrs {
		name := fieldPath(ve.Namespace())
		if _, seen := fe[name]; seen {
			continue
		}
		fe[name] = message(ve)
	}
	return fe
}

// fieldPath strips the root struct name from a namespace like
// "submitRequest.presenters[0].name" and lowercases the leading segment.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "is required"
	case "email":
		return "invalid email format"
	case "min":
		if ve.Kind().String() == "string" {
			return "must be at least " + ve.Param() + " characters"
		}
		return "must have at least " + ve.Param() + " items"
	case "max":
		if ve.Kind().String() == "string" {
			return "must be at most " + ve.Param() + " characters"
		}
		return "must have at most " + ve.Param() + " items"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(ve.Param(), " ", ", ")
	case "eq":
		return "must equal " + ve.Param()
	case "startswith":
		return "must start with " + ve.Param()
	default:
		return "is invalid"
	}
}
