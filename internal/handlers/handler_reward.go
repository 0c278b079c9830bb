package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// rewardHandler handles reward history and the admin accrual trigger.
type rewardHandler struct {
	rewardService portssvc.RewardSvcFacade
}

func newRewardHandler(rs portssvc.RewardSvcFacade) *rewardHandler {
	return &rewardHandler{rewardService: rs}
}

// registerRewardRoutes registers the authenticated reward routes.
func registerRewardRoutes(rg *gin.RouterGroup, rs portssvc.RewardSvcFacade) {
	h := newRewardHandler(rs)
	rg.GET("/rewards", h.listMyRewards)
}

// registerAdminRewardRoutes registers the admin reward routes.
func registerAdminRewardRoutes(rg *gin.RouterGroup, rs portssvc.RewardSvcFacade) {
	h := newRewardHandler(rs)

	rewards := rg.Group("/rewards")
	{
		rewards.POST("/accrue", h.accrueRewards)
		rewards.GET("/projects/:id", h.listProjectPeriodRewards)
		rewards.GET("/pending-accrual", h.listProjectsPendingAccrual)
	}
}

// listMyRewards godoc
// @Summary List the authenticated user's reward history
// @Tags rewards
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListRewardsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /rewards [get]
func (h *rewardHandler) listMyRewards(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListRewardsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.rewardService.ListRewardsByUser(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list rewards")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// accrueRewards godoc
// @Summary Run monthly reward accrual for a project (admin)
// @Description Distributes the reported generation across paid subscribers,
// @Description proportional to contribution. One run per project and period.
// @Tags admin
// @Accept json
// @Produce json
// @Param accrual body dto.AccrueRewardsRequest true "Accrual period and generation"
// @Success 201 {object} dto.AccrueRewardsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 409 {object} ErrorResponse "Period already accrued"
// @Failure 422 {object} ErrorResponse "No paid subscriptions"
// @Security BearerAuth
// @Router /admin/rewards/accrue [post]
func (h *rewardHandler) accrueRewards(c *gin.Context) {
	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AccrueRewardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.rewardService.AccrueMonthlyRewards(c.Request.Context(), req, adminUserID)
	if err != nil {
		respondError(c, err, "Failed to accrue rewards")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// listProjectPeriodRewards godoc
// @Summary List one accrual run's entries for a project (admin)
// @Tags admin
// @Produce json
// @Param id path string true "Project ID"
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {array} dto.RewardResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/rewards/projects/{id} [get]
func (h *rewardHandler) listProjectPeriodRewards(c *gin.Context) {
	month, year, ok := parsePeriodQuery(c)
	if !ok {
		return
	}

	rewards, err := h.rewardService.ListRewardsByProjectPeriod(c.Request.Context(), c.Param("id"), month, year)
	if err != nil {
		respondError(c, err, "Failed to list rewards")
		return
	}

	responses := make([]dto.RewardResponse, len(rewards))
	for i, r := range rewards {
		responses[i] = dto.ToRewardResponse(&r)
	}
	c.JSON(http.StatusOK, responses)
}

// listProjectsPendingAccrual godoc
// @Summary List active projects with no accrual for a period (admin)
// @Tags admin
// @Produce json
// @Param month query int true "Month (1-12)"
// @Param year query int true "Year"
// @Success 200 {array} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/rewards/pending-accrual [get]
func (h *rewardHandler) listProjectsPendingAccrual(c *gin.Context) {
	month, year, ok := parsePeriodQuery(c)
	if !ok {
		return
	}

	projects, err := h.rewardService.ListProjectsPendingAccrual(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err, "Failed to list pending projects")
		return
	}

	responses := make([]dto.ProjectResponse, len(projects))
	for i, p := range projects {
		responses[i] = dto.ToProjectResponse(&p)
	}
	c.JSON(http.StatusOK, responses)
}

// parsePeriodQuery reads and validates the month/year query pair.
func parsePeriodQuery(c *gin.Context) (month, year int, ok bool) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "month must be an integer between 1 and 12"})
		return 0, 0, false
	}
	year, err = strconv.Atoi(c.Query("year"))
	if err != nil || year < 2020 || year > time.Now().Year()+1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "year is out of range"})
		return 0, 0, false
	}
	return month, year, true
}
