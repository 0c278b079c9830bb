package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// configHandler handles admin management of system policy values.
type configHandler struct {
	configService portssvc.ConfigSvcFacade
}

// registerAdminConfigRoutes registers the admin configuration routes.
func registerAdminConfigRoutes(rg *gin.RouterGroup, cs portssvc.ConfigSvcFacade) {
	h := &configHandler{configService: cs}

	configs := rg.Group("/configs")
	{
		configs.GET("", h.listConfigs)
		configs.PUT("", h.setConfig)
	}
}

// listConfigs godoc
// @Summary List system configuration entries (admin)
// @Tags admin
// @Produce json
// @Success 200 {array} dto.ConfigResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/configs [get]
func (h *configHandler) listConfigs(c *gin.Context) {
	configs, err := h.configService.ListConfigs(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list configurations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListConfigResponse(configs))
}

// setConfig godoc
// @Summary Set a system configuration value (admin)
// @Description Upserts the entry; the change takes effect on the next read.
// @Tags admin
// @Accept json
// @Produce json
// @Param config body dto.UpsertConfigRequest true "Key, value and description"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/configs [put]
func (h *configHandler) setConfig(c *gin.Context) {
	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpsertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.configService.SetConfig(c.Request.Context(), req.ConfigKey, req.ConfigValue, req.Description, adminUserID); err != nil {
		respondError(c, err, "Failed to set configuration")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Configuration updated"})
}
