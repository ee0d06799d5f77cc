package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/eurachacha/achacha-api/internal/api/shared"
	"github.com/eurachacha/achacha-api/internal/platform/logger"
	"github.com/eurachacha/achacha-api/internal/service/sharebox"
)

// ShareBoxHandler handles share-box-related API requests.
type ShareBoxHandler struct {
	service   sharebox.ShareBoxService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewShareBoxHandler creates a new ShareBoxHandler with the given dependencies.
func NewShareBoxHandler(service sharebox.ShareBoxService, log *slog.Logger) *ShareBoxHandler {
	if service == nil {
		panic("service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ShareBoxHandler{
		service:   service,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "sharebox_handler")),
	}
}

// Create handles POST /shareboxes.
func (h *ShareBoxHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateShareBoxRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	box, err := h.service.CreateShareBox(r.Context(), userID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create share box")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewShareBoxResponse(box))
}

// Join handles POST /shareboxes/join.
func (h *ShareBoxHandler) Join(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req JoinShareBoxRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	box, err := h.service.JoinShareBox(r.Context(), userID, req.InviteCode)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to join share box")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewShareBoxResponse(box))
}

// GetSettings handles GET /shareboxes/{id}/settings.
func (h *ShareBoxHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, shareBoxID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	box, err := h.service.GetShareBoxSettings(r.Context(), userID, shareBoxID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load share box settings")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewShareBoxResponse(box))
}

// UpdateName handles PATCH /shareboxes/{id}/name.
func (h *ShareBoxHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	userID, shareBoxID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req UpdateShareBoxNameRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.service.UpdateShareBoxName(r.Context(), userID, shareBoxID, req.Name); err != nil {
		HandleAPIError(w, r, err, "Failed to rename share box")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateParticipationSetting handles PATCH /shareboxes/{id}/participation-setting.
func (h *ShareBoxHandler) UpdateParticipationSetting(w http.ResponseWriter, r *http.Request) {
	userID, shareBoxID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req UpdateParticipationSettingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	err := h.service.UpdateParticipationSetting(r.Context(), userID, shareBoxID, *req.AllowParticipation)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update participation setting")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListParticipants handles GET /shareboxes/{id}/users.
func (h *ShareBoxHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	userID, shareBoxID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	users, err := h.service.GetParticipants(r.Context(), userID, shareBoxID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list participants")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewParticipantListResponse(users))
}

// ListGifticons handles GET /shareboxes/{id}/gifticons.
func (h *ShareBoxHandler) ListGifticons(w http.ResponseWriter, r *http.Request) {
	userID, shareBoxID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	gifticons, err := h.service.GetShareBoxGifticons(r.Context(), userID, shareBoxID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list gifticons")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewGifticonListResponse(gifticons))
}

// ShareGifticon handles POST /shareboxes/{id}/gifticons/{gifticonID}.
func (h *ShareBoxHandler) ShareGifticon(w http.ResponseWriter, r *http.Request) {
	userID, shareBoxID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}
	gifticonID, err := getPathUUID(r, "gifticonID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.service.ShareGifticon(r.Context(), userID, shareBoxID, gifticonID); err != nil {
		HandleAPIError(w, r, err, "Failed to share gifticon")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnshareGifticon handles DELETE /shareboxes/{id}/gifticons/{gifticonID}.
func (h *ShareBoxHandler) UnshareGifticon(w http.ResponseWriter, r *http.Request) {
	userID, shareBoxID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}
	gifticonID, err := getPathUUID(r, "gifticonID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.service.UnshareGifticon(r.Context(), userID, shareBoxID, gifticonID); err != nil {
		HandleAPIError(w, r, err, "Failed to unshare gifticon")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Leave handles DELETE /shareboxes/{id}/leave. The owner leaving dissolves
// the box for everyone.
func (h *ShareBoxHandler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, shareBoxID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.service.LeaveShareBox(r.Context(), userID, shareBoxID); err != nil {
		HandleAPIError(w, r, err, "Failed to leave share box")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
