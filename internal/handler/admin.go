package handler

import (
	"net/http"
	"strconv"

	"github.com/dormscout/dormscout/internal/ctxkeys"
	"github.com/dormscout/dormscout/internal/service"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// role reads the caller's role from context. The service layer does the
// actual permission check.
func role(r *http.Request) string {
	profile := ctxkeys.Profile(r.Context())
	if profile == nil {
		return ""
	}
	return profile.Role
}

func limitParam(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return limit
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(role(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.adminService.Profiles(role(r), limitParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})
}

func (h *AdminHandler) Dorms(w http.ResponseWriter, r *http.Request) {
	dorms, err := h.adminService.RecentDorms(role(r), limitParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dorms": dorms})
}

func (h *AdminHandler) Consents(w http.ResponseWriter, r *http.Request) {
	consents, err := h.adminService.Consents(role(r), r.URL.Query().Get("email"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"consents": consents})
}
