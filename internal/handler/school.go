package handler

import (
	"net/http"

	"github.com/dormscout/dormscout/internal/service"
)

type SchoolHandler struct {
	schoolService *service.SchoolService
	campusService *service.CampusService
}

func NewSchoolHandler(schoolService *service.SchoolService, campusService *service.CampusService) *SchoolHandler {
	return &SchoolHandler{
		schoolService: schoolService,
		campusService: campusService,
	}
}

func (h *SchoolHandler) List(w http.ResponseWriter, r *http.Request) {
	schools, err := h.schoolService.Search(r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schools": schools})
}

func (h *SchoolHandler) ByID(w http.ResponseWriter, r *http.Request) {
	school, err := h.schoolService.ByID(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, school)
}

func (h *SchoolHandler) Buildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.campusService.Buildings(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"buildings": buildings})
}

func (h *SchoolHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.campusService.Rooms(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (h *SchoolHandler) Room(w http.ResponseWriter, r *http.Request) {
	room, err := h.campusService.Room(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}
