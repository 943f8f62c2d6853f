package handler

import (
	"net/http"

	"github.com/dormscout/dormscout/internal/ctxkeys"
	"github.com/dormscout/dormscout/internal/service"
)

// maxUploadBytes caps the whole multipart submission.
const maxUploadBytes = 64 << 20

type DormHandler struct {
	dormService  *service.DormService
	savedService *service.SavedDormService
}

func NewDormHandler(dormService *service.DormService, savedService *service.SavedDormService) *DormHandler {
	return &DormHandler{
		dormService:  dormService,
		savedService: savedService,
	}
}

// Create accepts a multipart form: text fields plus photos_empty and
// photos_decorated file sets.
func (h *DormHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	in := service.CreateDormInput{
		UserID:         user.ID,
		SchoolID:       r.FormValue("school_id"),
		DormName:       r.FormValue("dorm_name"),
		RoomNumber:     optionalField(r, "room_number"),
		Notes:          optionalField(r, "notes"),
		ContactEnabled: r.FormValue("contact_enabled") == "true",
	}
	if in.ContactEnabled {
		in.ContactEmail = optionalField(r, "contact_email")
		in.ContactFirstName = optionalField(r, "contact_first_name")
		in.ContactLastInitial = optionalField(r, "contact_last_initial")
	}
	if r.MultipartForm != nil {
		in.PhotosEmpty = r.MultipartForm.File["photos_empty"]
		in.PhotosDecorated = r.MultipartForm.File["photos_decorated"]
	}

	dorm, err := h.dormService.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dorm)
}

func (h *DormHandler) Search(w http.ResponseWriter, r *http.Request) {
	dorms, err := h.dormService.Search(r.URL.Query().Get("school_id"), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dorms": dorms})
}

func (h *DormHandler) ByID(w http.ResponseWriter, r *http.Request) {
	requesterID := ""
	if user := ctxkeys.User(r.Context()); user != nil {
		requesterID = user.ID
	}

	dorm, err := h.dormService.ByID(requesterID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := map[string]any{"dorm": dorm}
	if requesterID != "" {
		saved, err := h.savedService.IsSaved(requesterID, dorm.ID)
		if err == nil {
			resp["saved"] = saved
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *DormHandler) Mine(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	dorms, err := h.dormService.Mine(user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dorms": dorms})
}

type updateDormRequest struct {
	DormName           *string `json:"dorm_name"`
	RoomNumber         *string `json:"room_number"`
	Notes              *string `json:"notes"`
	ContactEnabled     *bool   `json:"contact_enabled"`
	ContactEmail       *string `json:"contact_email"`
	ContactFirstName   *string `json:"contact_first_name"`
	ContactLastInitial *string `json:"contact_last_initial"`
}

func (h *DormHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateDormRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dorm, err := h.dormService.Update(user.ID, r.PathValue("id"), service.UpdateDormInput{
		DormName:           req.DormName,
		RoomNumber:         req.RoomNumber,
		Notes:              req.Notes,
		ContactEnabled:     req.ContactEnabled,
		ContactEmail:       req.ContactEmail,
		ContactFirstName:   req.ContactFirstName,
		ContactLastInitial: req.ContactLastInitial,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dorm)
}

type publishRequest struct {
	Published bool `json:"published"`
}

func (h *DormHandler) SetPublished(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req publishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.dormService.SetPublished(user.ID, r.PathValue("id"), req.Published); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"published": req.Published})
}

func (h *DormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.dormService.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *DormHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.savedService.Save(user.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"saved": true})
}

func (h *DormHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.savedService.Unsave(user.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": false})
}

func (h *DormHandler) Saved(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	entries, err := h.savedService.List(user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": entries})
}

func optionalField(r *http.Request, name string) *string {
	value := r.FormValue(name)
	if value == "" {
		return nil
	}
	return &value
}
