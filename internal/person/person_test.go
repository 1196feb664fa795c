package person

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	p := New("Ana", "Ruiz", 30)

	if p.FirstName != "Ana" {
		t.Errorf("FirstName = %q, want %q", p.FirstName, "Ana")
	}
	if p.LastName != "Ruiz" {
		t.Errorf("LastName = %q, want %q", p.LastName, "Ruiz")
	}
	if p.Age != 30 {
		t.Errorf("Age = %d, want 30", p.Age)
	}
}

func TestPerson_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Person
		want bool
	}{
		{"identical", New("Ana", "Ruiz", 30), New("Ana", "Ruiz", 30), true},
		{"different first name", New("Ana", "Ruiz", 30), New("Ane", "Ruiz", 30), false},
		{"different last name", New("Ana", "Ruiz", 30), New("Ana", "Ruis", 30), false},
		{"different age", New("Ana", "Ruiz", 30), New("Ana", "Ruiz", 31), false},
		{"case matters", New("Ana", "Ruiz", 30), New("ana", "Ruiz", 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerson_FullName(t *testing.T) {
	if got := New("Luis", "Gomez", 25).FullName(); got != "Luis Gomez" {
		t.Errorf("FullName() = %q, want %q", got, "Luis Gomez")
	}
	if got := New("Luis", "", 25).FullName(); got != "Luis" {
		t.Errorf("FullName() = %q, want %q", got, "Luis")
	}
}

func TestPerson_String(t *testing.T) {
	if got := New("Luis", "Gomez", 25).String(); got != "Luis Gomez (25)" {
		t.Errorf("String() = %q", got)
	}
}

func TestPerson_Validate(t *testing.T) {
	strict := Rules{RejectNegativeAge: true, MaxNameLength: 5}

	tests := []struct {
		name      string
		p         Person
		rules     Rules
		wantField string
	}{
		{"valid", New("Ana", "Ruiz", 30), DefaultRules(), ""},
		{"missing first name", New("", "Ruiz", 30), DefaultRules(), "first name"},
		{"blank first name", New("   ", "Ruiz", 30), DefaultRules(), "first name"},
		{"missing last name", New("Ana", "", 30), DefaultRules(), "last name"},
		{"negative age allowed by default", New("Ana", "Ruiz", -1), DefaultRules(), ""},
		{"negative age rejected", New("Ana", "Ruiz", -1), strict, "age"},
		{"zero age accepted", New("Ana", "Ruiz", 0), strict, ""},
		{"name too long", New("Anastasia", "Ruiz", 1), strict, "first name"},
		{"unlimited length", New(strings.Repeat("a", 300), "Ruiz", 1), DefaultRules(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate(tt.rules)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("Validate() error = %v, want *FieldError", err)
			}
			if fe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", fe.Field, tt.wantField)
			}
		})
	}
}
