package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire format for date field values
const DateLayout = "2006-01-02"

// FieldValue stores the value of one field for one item. Physically the row
// spans one typed column per storage class; logically it is a tagged union
// keyed by the owning TemplateField's FieldType:
//
//	text|textarea|select  -> TextValue
//	number                -> NumericValue
//	date                  -> DateValue
//	boolean               -> BooleanValue
//	json|multiselect      -> JSONValue
//
// SetValue and Value are the only accessors; they pattern-match the type tag
// so the "one column active" invariant never depends on inspecting which
// column happens to be non-nil.
type FieldValue struct {
	BaseModel
	ItemID       int64          `gorm:"not null;index:idx_item_field_values_item_id;uniqueIndex:uq_item_field_values_item_field,priority:1" json:"itemId"`
	FieldID      int64          `gorm:"not null;uniqueIndex:uq_item_field_values_item_field,priority:2" json:"fieldId"`
	TextValue    *string        `gorm:"type:text" json:"textValue"`
	NumericValue *float64       `json:"numericValue"`
	DateValue    *time.Time     `gorm:"type:date" json:"dateValue"`
	BooleanValue *bool          `json:"booleanValue"`
	JSONValue    datatypes.JSON `gorm:"type:jsonb" json:"jsonValue"`
}

// TableName specifies the table name for FieldValue
func (FieldValue) TableName() string {
	return "item_field_values"
}

// SetValue routes raw into the column selected by fieldType, clearing every
// other typed column so an upsert that changes storage class leaves no stale
// value behind.
func (v *FieldValue) SetValue(fieldType FieldType, raw interface{}) error {
	v.TextValue = nil
	v.NumericValue = nil
	v.DateValue = nil
	v.BooleanValue = nil
	v.JSONValue = nil

	if raw == nil {
		return nil
	}

	switch fieldType {
	case FieldTypeText, FieldTypeTextarea, FieldTypeSelect:
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("field type %s expects a string value, got %T", fieldType, raw)
		}
		v.TextValue = &s

	case FieldTypeNumber:
		n, err := toFloat64(raw)
		if err != nil {
			return fmt.Errorf("field type %s expects a numeric value: %w", fieldType, err)
		}
		v.NumericValue = &n

	case FieldTypeDate:
		t, err := toDate(raw)
		if err != nil {
			return fmt.Errorf("field type %s expects a %s date: %w", fieldType, DateLayout, err)
		}
		v.DateValue = &t

	case FieldTypeBoolean:
		b, ok := raw.(bool)
		if !ok {
			return fmt.Errorf("field type %s expects a boolean value, got %T", fieldType, raw)
		}
		v.BooleanValue = &b

	case FieldTypeJSON, FieldTypeMultiselect:
		data, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("field type %s expects a JSON-encodable value: %w", fieldType, err)
		}
		v.JSONValue = data

	default:
		return fmt.Errorf("unknown field type %q", fieldType)
	}

	return nil
}

// Value extracts the stored value from the column selected by fieldType.
// It returns nil when the row holds no value for that storage class.
func (v *FieldValue) Value(fieldType FieldType) (interface{}, error) {
	switch fieldType {
	case FieldTypeText, FieldTypeTextarea, FieldTypeSelect:
		if v.TextValue == nil {
			return nil, nil
		}
		return *v.TextValue, nil

	case FieldTypeNumber:
		if v.NumericValue == nil {
			return nil, nil
		}
		return *v.NumericValue, nil

	case FieldTypeDate:
		if v.DateValue == nil {
			return nil, nil
		}
		return v.DateValue.Format(DateLayout), nil

	case FieldTypeBoolean:
		if v.BooleanValue == nil {
			return nil, nil
		}
		return *v.BooleanValue, nil

	case FieldTypeJSON, FieldTypeMultiselect:
		if len(v.JSONValue) == 0 {
			return nil, nil
		}
		var out interface{}
		if err := json.Unmarshal(v.JSONValue, &out); err != nil {
			return nil, fmt.Errorf("stored json value is not decodable: %w", err)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown field type %q", fieldType)
	}
}

func toFloat64(raw interface{}) (float64, error) {
	switch n := raw.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("got %T", raw)
	}
}

func toDate(raw interface{}) (time.Time, error) {
	switch d := raw.(type) {
	case time.Time:
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	case string:
		t, err := time.Parse(DateLayout, d)
		if err != nil {
			return time.Time{}, err
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("got %T", raw)
	}
}
