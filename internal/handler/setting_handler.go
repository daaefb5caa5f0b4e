package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-exam-api/internal/service"
	appErrors "github.com/noah-isme/school-exam-api/pkg/errors"
	"github.com/noah-isme/school-exam-api/pkg/response"
)

// SettingHandler exposes the flat settings map.
type SettingHandler struct {
	settings *service.SettingService
}

// NewSettingHandler constructs SettingHandler.
func NewSettingHandler(settings *service.SettingService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

// Get godoc
// @Summary Get a settings entry
// @Description Returns the stored JSON value for the key, or null when absent.
// @Tags Settings
// @Produce json
// @Param key path string true "Settings key"
// @Success 200 {object} response.Envelope
// @Router /settings/{key} [get]
func (h *SettingHandler) Get(c *gin.Context) {
	value := h.settings.Get(c.Request.Context(), c.Param("key"))
	if value == nil {
		response.JSON(c, http.StatusOK, nil)
		return
	}
	response.JSON(c, http.StatusOK, value)
}

// Set godoc
// @Summary Store a settings entry
// @Description Accepts any JSON body and stores it verbatim under the key.
// @Tags Settings
// @Accept json
// @Produce json
// @Param key path string true "Settings key"
// @Success 200 {object} response.Envelope
// @Router /settings/{key} [put]
func (h *SettingHandler) Set(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read payload"))
		return
	}
	if len(body) > 0 && !json.Valid(body) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "value must be valid JSON"))
		return
	}

	setting, err := h.settings.Set(c.Request.Context(), c.Param("key"), json.RawMessage(body))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setting)
}
