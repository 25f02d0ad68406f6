package adaptor

import (
	"net/http"

	"chakai-booking/internal/dto/request"
	"chakai-booking/internal/usecase"
	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

type SettingHandler struct {
	service usecase.SettingService
	log     *zap.Logger
}

func NewSettingHandler(service usecase.SettingService, log *zap.Logger) *SettingHandler {
	return &SettingHandler{
		service: service,
		log:     log.With(zap.String("handler", "setting")),
	}
}

// GetPublicSettings handles GET /api/settings/public
func (h *SettingHandler) GetPublicSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetPublic(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get public settings")
		return
	}

	utils.ResponseSuccess(w, "success", settings)
}

// GetSettings handles GET /api/admin/settings
func (h *SettingHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get settings")
		return
	}

	utils.ResponseSuccess(w, "success", settings)
}

// UpdateSettings handles PUT /api/admin/settings
func (h *SettingHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	settings, err := h.service.Update(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update settings")
		return
	}

	utils.ResponseSuccess(w, "Settings updated", settings)
}
