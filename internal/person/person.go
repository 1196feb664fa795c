// Package person provides the Person record kept in a roster.
package person

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Person is a single roster entry.
// Two persons are equal when all three fields are equal; there is no other key.
type Person struct {
	// FirstName is the given name ("Nombre").
	FirstName string `json:"first_name" yaml:"first_name" validate:"required"`
	// LastName is the family name ("Apellidos").
	LastName string `json:"last_name" yaml:"last_name" validate:"required"`
	// Age is the age in years ("Edad").
	Age int `json:"age" yaml:"age"`
}

// New creates a Person from its three fields.
func New(firstName, lastName string, age int) Person {
	return Person{
		FirstName: firstName,
		LastName:  lastName,
		Age:       age,
	}
}

// Equal reports whether p and other hold the same three values.
func (p Person) Equal(other Person) bool {
	return p == other
}

// FullName returns "FirstName LastName".
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// String implements fmt.Stringer.
func (p Person) String() string {
	return fmt.Sprintf("%s (%d)", p.FullName(), p.Age)
}

// Rules configures the checks applied to persons entered through the editor.
// Persons read from CSV files are not subject to these rules.
type Rules struct {
	// RejectNegativeAge refuses ages below zero.
	RejectNegativeAge bool
	// MaxNameLength caps the length of each name field (0 means unlimited).
	MaxNameLength int
}

// DefaultRules returns the permissive rules used when nothing is configured.
func DefaultRules() Rules {
	return Rules{
		RejectNegativeAge: false,
		MaxNameLength:     0,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes one invalid field of a Person.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks p against the given rules and returns the first problem found.
func (p Person) Validate(rules Rules) error {
	if err := validate.Struct(p); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return &FieldError{Field: fieldLabel(verrs[0].Field()), Message: "is required"}
		}
		return err
	}
	if strings.TrimSpace(p.FirstName) == "" {
		return &FieldError{Field: fieldLabel("FirstName"), Message: "is required"}
	}
	if strings.TrimSpace(p.LastName) == "" {
		return &FieldError{Field: fieldLabel("LastName"), Message: "is required"}
	}

	if rules.MaxNameLength > 0 {
		tag := fmt.Sprintf("max=%d", rules.MaxNameLength)
		for _, f := range []struct{ name, value string }{
			{"FirstName", p.FirstName},
			{"LastName", p.LastName},
		} {
			if err := validate.Var(f.value, tag); err != nil {
				return &FieldError{
					Field:   fieldLabel(f.name),
					Message: fmt.Sprintf("must be at most %d characters", rules.MaxNameLength),
				}
			}
		}
	}

	if rules.RejectNegativeAge {
		if err := validate.Var(p.Age, "gte=0"); err != nil {
			return &FieldError{Field: fieldLabel("Age"), Message: "must not be negative"}
		}
	}

	return nil
}

// fieldLabel maps struct field names to the labels shown to the user.
func fieldLabel(field string) string {
	switch field {
	case "FirstName":
		return "first name"
	case "LastName":
		return "last name"
	case "Age":
		return "age"
	default:
		return strings.ToLower(field)
	}
}
