package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dormscout/dormscout/internal/service"
	"github.com/dormscout/dormscout/internal/validation"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

// writeServiceError maps known service errors onto HTTP statuses. Unknown
// errors become an opaque 500; the detail goes to the log, not the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrDormNotFound),
		errors.Is(err, service.ErrSchoolNotFound),
		errors.Is(err, service.ErrBuildingNotFound),
		errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrPhotoNotFound),
		errors.Is(err, service.ErrPageNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrDomainNotAllowed),
		errors.Is(err, service.ErrConsentNotAccepted),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrDormNameRequired),
		errors.Is(err, service.ErrSchoolRequired),
		errors.Is(err, service.ErrTooManyPhotos),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrBadPhotoType),
		errors.Is(err, validation.ErrPasswordPolicy),
		errors.Is(err, validation.ErrFileRejected):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
