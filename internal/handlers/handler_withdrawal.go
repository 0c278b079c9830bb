package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// withdrawalHandler handles payout requests and admin review.
type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

func newWithdrawalHandler(ws portssvc.WithdrawalSvcFacade) *withdrawalHandler {
	return &withdrawalHandler{withdrawalService: ws}
}

// registerWithdrawalRoutes registers the authenticated withdrawal routes.
func registerWithdrawalRoutes(rg *gin.RouterGroup, ws portssvc.WithdrawalSvcFacade) {
	h := newWithdrawalHandler(ws)

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.POST("", h.requestWithdrawal)
		withdrawals.GET("", h.listMyWithdrawals)
		withdrawals.GET("/:id", h.getWithdrawal)
	}
}

// registerAdminWithdrawalRoutes registers the admin withdrawal routes.
func registerAdminWithdrawalRoutes(rg *gin.RouterGroup, ws portssvc.WithdrawalSvcFacade) {
	h := newWithdrawalHandler(ws)

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.GET("", h.listWithdrawalsByStatus)
		withdrawals.POST("/:id/reject", h.rejectWithdrawal)
	}
}

// requestWithdrawal godoc
// @Summary Request a payout
// @Description Debits the wallet and pays out immediately. KYC approval, the
// @Description per-request minimum and the monthly cap all apply.
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param withdrawal body dto.CreateWithdrawalRequest true "Payout details"
// @Success 201 {object} dto.WithdrawalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "KYC not approved, below minimum, cap exceeded or insufficient balance"
// @Security BearerAuth
// @Router /withdrawals [post]
func (h *withdrawalHandler) requestWithdrawal(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	withdrawal, err := h.withdrawalService.RequestWithdrawal(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to request withdrawal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToWithdrawalResponse(withdrawal))
}

// listMyWithdrawals godoc
// @Summary List the authenticated user's withdrawals
// @Tags withdrawals
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListWithdrawalsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawals [get]
func (h *withdrawalHandler) listMyWithdrawals(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListWithdrawalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.withdrawalService.ListWithdrawalsByUser(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list withdrawals")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getWithdrawal godoc
// @Summary Get a withdrawal by ID
// @Tags withdrawals
// @Produce json
// @Param id path string true "Withdrawal ID"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /withdrawals/{id} [get]
func (h *withdrawalHandler) getWithdrawal(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	withdrawal, err := h.withdrawalService.GetWithdrawalByID(c.Request.Context(), c.Param("id"), userID, false)
	if err != nil {
		respondError(c, err, "Failed to retrieve withdrawal")
		return
	}

	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(withdrawal))
}

// listWithdrawalsByStatus godoc
// @Summary List withdrawals by status (admin)
// @Tags admin
// @Produce json
// @Param status query string false "Withdrawal status" default(PAID)
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.WithdrawalResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/withdrawals [get]
func (h *withdrawalHandler) listWithdrawalsByStatus(c *gin.Context) {
	status := domain.WithdrawalStatus(c.DefaultQuery("status", string(domain.WithdrawalPaid)))
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	withdrawals, err := h.withdrawalService.ListWithdrawalsByStatus(c.Request.Context(), status, limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list withdrawals")
		return
	}

	responses := make([]dto.WithdrawalResponse, len(withdrawals))
	for i, w := range withdrawals {
		responses[i] = dto.ToWithdrawalResponse(&w)
	}
	c.JSON(http.StatusOK, responses)
}

// rejectWithdrawal godoc
// @Summary Reject a paid withdrawal (admin)
// @Description Marks the withdrawal REJECTED and credits the amount back to the wallet.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Withdrawal ID"
// @Param rejection body dto.RejectWithdrawalRequest true "Rejection notes"
// @Success 200 {object} dto.WithdrawalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Withdrawal not in a rejectable state"
// @Security BearerAuth
// @Router /admin/withdrawals/{id}/reject [post]
func (h *withdrawalHandler) rejectWithdrawal(c *gin.Context) {
	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RejectWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	withdrawal, err := h.withdrawalService.RejectWithdrawal(c.Request.Context(), c.Param("id"), req, adminUserID)
	if err != nil {
		respondError(c, err, "Failed to reject withdrawal")
		return
	}

	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(withdrawal))
}
