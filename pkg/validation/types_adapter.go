package validation

import (
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"

	"hr-system/pkg/types"
)

// registerNullTypes учит валидатор "смотреть внутрь" nullable-типов.
// Невалидное значение отдаётся как nil, чтобы сработал omitempty.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok && val.Valid {
			return val.Time
		}
		return nil
	}, null.Time{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(types.OptionalString); ok && val.Value.Valid {
			return val.Value.String
		}
		return nil
	}, types.OptionalString{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(types.OptionalTime); ok && val.Value.Valid {
			return val.Value.Time
		}
		return nil
	}, types.OptionalTime{})
}
