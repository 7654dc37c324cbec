// Package validation provides input validation utilities
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"devconnector/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
		validate = v
	})
	return validate
}

// Struct validates s against its `validate` tags and reports every violation
// at once. Messages come from the field's `msg` tag, or `msg_<tag>` when a
// specific rule needs its own wording.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return models.NewInternalError(err)
	}

	t := reflect.TypeOf(s)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	fields := make([]models.FieldError, 0, len(verrs))
	seen := make(map[string]struct{}, len(verrs))
	for _, fe := range verrs {
		msg := messageFor(t, fe)
		if _, dup := seen[fe.Field()+msg]; dup {
			continue
		}
		seen[fe.Field()+msg] = struct{}{}
		fields = append(fields, models.FieldError{Msg: msg, Param: fe.Field()})
	}
	return models.NewFieldValidationError(fields)
}

func messageFor(t reflect.Type, fe validator.FieldError) string {
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if msg := sf.Tag.Get("msg_" + fe.Tag()); msg != "" {
			return msg
		}
		if msg := sf.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	return fe.Field() + " is invalid"
}

// Merge folds extra field errors into a validation error produced by Struct.
// Either side may be empty.
func Merge(err error, extra ...models.FieldError) error {
	if len(extra) == 0 {
		return err
	}
	var fields []models.FieldError
	if err != nil {
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
			return err
		}
		fields = append(fields, appErr.Fields...)
	}
	return models.NewFieldValidationError(append(fields, extra...))
}
