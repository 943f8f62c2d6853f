package handler

import (
	"net/http"

	"github.com/dormscout/dormscout/internal/ctxkeys"
	"github.com/dormscout/dormscout/internal/middleware"
	"github.com/dormscout/dormscout/internal/service"
)

type ConsentHandler struct {
	consentService *service.ConsentService
}

func NewConsentHandler(consentService *service.ConsentService) *ConsentHandler {
	return &ConsentHandler{consentService: consentService}
}

// Record accepts the current legal versions for the logged-in user. The
// body is ignored: the server decides which versions are being accepted.
func (h *ConsentHandler) Record(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	consent, err := h.consentService.Record(user.ID, middleware.ClientIP(r), r.UserAgent())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, consent)
}

// History returns the caller's own consent log, newest first.
func (h *ConsentHandler) History(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	consents, err := h.consentService.History(user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"consents": consents})
}
