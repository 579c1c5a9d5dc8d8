package validators

import (
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
)

func TestQueryFloatParsesFractions(t *testing.T) {
	r := httptest.NewRequest("GET", "/?bathrooms=4.5", nil)
	got, err := QueryFloat(r, "bathrooms", 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != 4.5 {
		t.Fatalf("expected 4.5, got %v", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	got, err = QueryFloat(r, "bathrooms", 1.5)
	if err != nil || got != 1.5 {
		t.Fatalf("missing param must return default, got %v %v", got, err)
	}

	r = httptest.NewRequest("GET", "/?bathrooms=many", nil)
	_, err = QueryFloat(r, "bathrooms", 0)
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("non-numeric value must fail validation, got %v", err)
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=3", nil)
	got, err := QueryInt(r, "page", 0)
	if err != nil || got != 3 {
		t.Fatalf("expected 3, got %v %v", got, err)
	}

	r = httptest.NewRequest("GET", "/?page=abc", nil)
	_, err = QueryInt(r, "page", 0)
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("non-integer value must fail validation, got %v", err)
	}
}

func TestQueryBoolTriState(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	got, err := QueryBool(r, "imported")
	if err != nil || got != nil {
		t.Fatalf("missing param must return nil, got %v %v", got, err)
	}

	r = httptest.NewRequest("GET", "/?imported=true", nil)
	got, err = QueryBool(r, "imported")
	if err != nil || got == nil || !*got {
		t.Fatalf("expected true, got %v %v", got, err)
	}
}
