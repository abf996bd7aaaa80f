package domain

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	one := int64(1)

	tests := []struct {
		name      string
		validate  func() error
		wantKind  error
		wantField string
	}{
		{"person ok", (&Person{Name: "Müller"}).Validate, nil, ""},
		{"person without name", (&Person{Vorname: "Anna"}).Validate, ErrMissingRequiredField, "name"},
		{"verein ok", (&Verein{Name: "KC Wiking"}).Validate, nil, ""},
		{"verein without name", (&Verein{Kurz: "KCW"}).Validate, ErrMissingRequiredField, "name"},
		{"funktion without name", (&Funktion{}).Validate, ErrMissingRequiredField, "name"},
		{"mitglied ok", (&Mitglied{PersonID: &one, VereinID: &one}).Validate, nil, ""},
		{"mitglied without person", (&Mitglied{VereinID: &one}).Validate, ErrMissingReference, "personId"},
		{"mitglied without verein", (&Mitglied{PersonID: &one}).Validate, ErrMissingReference, "vereinId"},
		{"mitglied role is optional", (&Mitglied{PersonID: &one, VereinID: &one, FunktionID: nil}).Validate, nil, ""},
		{"land without code", (&Land{Name: "Deutschland"}).Validate, ErrMissingRequiredField, "laenderCode"},
		{"kjp without kurzname", (&KjpPosition{Name: "Jugenderholung"}).Validate, ErrMissingRequiredField, "kurzname"},
		{"veranstaltung empty", (&Veranstaltung{}).Validate, nil, ""},
		{"teilnahme without funktion", (&Teilnahme{PersonID: 1, VeranstaltungID: 1}).Validate, ErrMissingReference, "funktionId"},
		{"reisekosten without event", (&Reisekosten{PersonID: 1}).Validate, ErrMissingReference, "veranstaltungsId"},
		{"mitfahrer without claim", (&Mitfahrer{PersonID: 1}).Validate, ErrMissingReference, "reisekostenId"},
		{"finanzen without event", (&Finanzen{}).Validate, ErrMissingReference, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate()
			if tt.wantKind == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("error = %v, want kind %v", err, tt.wantKind)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tt.wantField)
			}
			if !IsValidationError(err) {
				t.Error("IsValidationError should be true")
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := (&Person{}).Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if got := ve.Message(); got != "Bitte Name eingeben" {
		t.Errorf("Message() = %q", got)
	}

	err = (&Mitglied{}).Validate()
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if got := ve.Message(); got != "Keine ID gefunden" {
		t.Errorf("Message() = %q", got)
	}
}
