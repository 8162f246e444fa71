package product

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Draft holds the add form's raw field values. Fields stay strings until Parse.
type Draft struct {
	ID      string `label:"Product ID" validate:"required"`
	Name    string `label:"Product Name" validate:"required"`
	Cost    string `label:"Cost" validate:"required"`
	Company string `label:"Company" validate:"required"`
	Contact string `label:"Contact" validate:"required"`
}

// DraftField identifies one input of the add form, in tab order.
type DraftField int

const (
	FieldID DraftField = iota
	FieldName
	FieldCost
	FieldCompany
	FieldContact
)

// DraftFields lists every field in form order.
var DraftFields = []DraftField{FieldID, FieldName, FieldCost, FieldCompany, FieldContact}

// Label returns the placeholder text shown for the field.
func (f DraftField) Label() string {
	switch f {
	case FieldID:
		return "Product ID"
	case FieldName:
		return "Product Name"
	case FieldCost:
		return "Cost"
	case FieldCompany:
		return "Company"
	case FieldContact:
		return "Contact"
	default:
		return "Unknown"
	}
}

// Get returns the current value of a field.
func (d Draft) Get(f DraftField) string {
	switch f {
	case FieldID:
		return d.ID
	case FieldName:
		return d.Name
	case FieldCost:
		return d.Cost
	case FieldCompany:
		return d.Company
	case FieldContact:
		return d.Contact
	}
	return ""
}

// With returns a copy of d with field f set to value.
func (d Draft) With(f DraftField, value string) Draft {
	switch f {
	case FieldID:
		d.ID = value
	case FieldName:
		d.Name = value
	case FieldCost:
		d.Cost = value
	case FieldCompany:
		d.Company = value
	case FieldContact:
		d.Contact = value
	}
	return d
}

// IsEmpty reports whether no field has been filled in.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})
	return v
}

// Parse validates the draft and coerces it into a Product: id to an integer,
// cost to a finite float. Every field is required. The first problem found,
// in form order, is returned as a *ValidationError.
func (d Draft) Parse() (Product, error) {
	trimmed := Draft{
		ID:      strings.TrimSpace(d.ID),
		Name:    strings.TrimSpace(d.Name),
		Cost:    strings.TrimSpace(d.Cost),
		Company: strings.TrimSpace(d.Company),
		Contact: strings.TrimSpace(d.Contact),
	}
	if err := validate.Struct(trimmed); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return Product{}, &ValidationError{Field: fieldErrs[0].Field(), Reason: "is required"}
		}
		return Product{}, &ValidationError{Reason: err.Error()}
	}

	id, err := strconv.Atoi(trimmed.ID)
	if err != nil {
		return Product{}, &ValidationError{Field: FieldID.Label(), Reason: "must be a whole number"}
	}
	cost, err := strconv.ParseFloat(trimmed.Cost, 64)
	if err != nil || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return Product{}, &ValidationError{Field: FieldCost.Label(), Reason: "must be a number"}
	}

	// Text fields are sent as typed; only the numeric ones are normalized.
	return Product{
		ID:      id,
		Name:    d.Name,
		Cost:    cost,
		Company: d.Company,
		Contact: d.Contact,
	}, nil
}

// ParseID validates a product ID typed into the search box.
func ParseID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Reason: "Please enter a product ID"}
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidationError{Field: FieldID.Label(), Reason: "must be a whole number"}
	}
	return id, nil
}
