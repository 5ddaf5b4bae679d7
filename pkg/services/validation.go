package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ekaya-inc/sparkify-etl/pkg/apperrors"
	"github.com/ekaya-inc/sparkify-etl/pkg/jsonutil"
)

// newRecordValidator reports fields by their JSON names and treats a
// FlexibleInt64 as present when it decoded to a value.
func newRecordValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if f, ok := field.Interface().(jsonutil.FlexibleInt64); ok && f.Valid {
			return true
		}
		return nil
	}, jsonutil.FlexibleInt64{})
	return v
}

// checkRequired wraps ErrMissingRequiredField with the JSON names of every
// required field rec lacks.
func checkRequired(v *validator.Validate, rec any) error {
	err := v.Struct(rec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: %s", apperrors.ErrMissingRequiredField, strings.Join(fields, ", "))
	}
	return err
}
