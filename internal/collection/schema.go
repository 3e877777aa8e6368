package collection

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldType enumerates the form controls the edit modal can render.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
	FieldImage    FieldType = "image"
	FieldVideo    FieldType = "video"
)

// Field describes one editable attribute of a collection item. It drives
// form generation only; the only constraint it carries is its input type.
type Field struct {
	Key     string    `json:"key"`
	Label   string    `json:"label"`
	Type    FieldType `json:"type"`
	Options []string  `json:"options,omitempty"`
}

// Validate checks the field declaration itself, not any value.
func (f Field) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Key, validation.Required),
		validation.Field(&f.Label, validation.Required),
		validation.Field(&f.Type, validation.Required, validation.In(
			FieldText, FieldTextarea, FieldSelect, FieldImage, FieldVideo,
		)),
		validation.Field(&f.Options, validation.When(f.Type == FieldSelect, validation.Required)),
	)
}

// Schema is the ordered field list backing one edit form.
type Schema []Field

// Validate checks every field declaration.
func (s Schema) Validate() error {
	for _, field := range s {
		if err := field.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the declared field keys in order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, field := range s {
		keys = append(keys, field.Key)
	}
	return keys
}
