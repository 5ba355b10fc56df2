package models

import (
	"encoding/json"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Optional is a JSON field that remembers whether it was present in the
// body and whether it was null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Null returns a present Optional holding JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// validationValue exposes the value to field tags as a pointer, so a present
// zero value is still checked. Absent and null fields read as nil and
// "omitempty" skips them.
func (o Optional[T]) validationValue() interface{} {
	if !o.Set || o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// column is the value written to the database; null becomes SQL NULL.
func (o Optional[T]) column() interface{} {
	if o.Null {
		return nil
	}
	return o.Value
}

type validatable interface {
	validationValue() interface{}
}

// RegisterValidators teaches v about Optional fields and the update
// request's null rules.
func RegisterValidators(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(validatable); ok {
			return o.validationValue()
		}
		return nil
	},
		Optional[string]{},
		Optional[int]{},
		Optional[Category]{},
		Optional[UnitOfMeasure]{},
	)
	v.RegisterStructValidation(validateUpdateNulls, UpdateProductRequest{})
}

func validateUpdateNulls(sl validator.StructLevel) {
	req, ok := sl.Current().Interface().(UpdateProductRequest)
	if !ok {
		return
	}
	for _, f := range req.nullRequiredFields() {
		sl.ReportError(nil, f[0], f[1], "notnull", "")
	}
}
