package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
)

// QueryInt parses an optional integer query parameter. Missing or
// blank values return def.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" must be an integer")
	}
	return value, nil
}

// QueryFloat parses an optional float query parameter. Missing or
// blank values return def.
func QueryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" must be a number")
	}
	return value, nil
}

// QueryBool parses an optional tri-state boolean query parameter.
// Missing or blank values return nil.
func QueryBool(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, name+" must be a boolean")
	}
	return &value, nil
}

// Query returns a trimmed query parameter.
func Query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
