package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imarket-ke/imarket-backend/api/middleware"
	"github.com/imarket-ke/imarket-backend/pkg/enums"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
)

func shopParam(r *http.Request) (enums.Shop, error) {
	shop, err := enums.ParseShop(chi.URLParam(r, "shop"))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown shop")
	}
	return shop, nil
}

func sessionID(r *http.Request) (string, error) {
	id := middleware.SessionIDFromContext(r.Context())
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return id, nil
}
