package controllers

import (
	"net/http"

	"github.com/imarket-ke/imarket-backend/api/responses"
	"github.com/imarket-ke/imarket-backend/api/validators"
	"github.com/imarket-ke/imarket-backend/internal/activities"
	"github.com/imarket-ke/imarket-backend/internal/profile"
	pkgerrors "github.com/imarket-ke/imarket-backend/pkg/errors"
	"github.com/imarket-ke/imarket-backend/pkg/logger"
	"github.com/imarket-ke/imarket-backend/pkg/storage"
)

// GetProfile returns the session profile, defaulting to the guest
// record.
func GetProfile(svc profile.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		p, err := svc.Get(r.Context(), sid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, p)
	}
}

// UpdateProfile overwrites the session profile.
func UpdateProfile(svc profile.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body profile.UpdateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		p, err := svc.Update(r.Context(), sid, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, p)
	}
}

// ListActivities returns the session activity log, newest first.
func ListActivities(svc activities.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, err := svc.List(r.Context(), sid)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// Logout wipes everything stored for the session.
func Logout(store storage.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid, err := sessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := store.Clear(r.Context(), sid); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing session"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged out"})
	}
}
