package handler

import (
	"net/http"

	"github.com/dormscout/dormscout/internal/service"
)

type LegalHandler struct {
	legalService *service.LegalService
}

func NewLegalHandler(legalService *service.LegalService) *LegalHandler {
	return &LegalHandler{legalService: legalService}
}

// Versions exposes the current document versions the consent gate
// enforces, so the client can label its consent prompt.
func (h *LegalHandler) Versions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.legalService.CurrentVersions())
}

func (h *LegalHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.legalService.Page(r.PathValue("slug"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
