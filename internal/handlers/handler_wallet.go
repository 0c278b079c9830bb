package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// walletHandler exposes the wallet's read surface and the engagement debits.
type walletHandler struct {
	walletService     portssvc.WalletSvcFacade
	engagementService portssvc.EngagementSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade, es portssvc.EngagementSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws, engagementService: es}
}

// registerWalletRoutes registers wallet and engagement routes.
func registerWalletRoutes(rg *gin.RouterGroup, ws portssvc.WalletSvcFacade, es portssvc.EngagementSvcFacade) {
	h := newWalletHandler(ws, es)

	wallet := rg.Group("/wallet")
	{
		wallet.GET("/balance", h.getBalance)
		wallet.GET("/summary", h.getSummary)
		wallet.GET("/transfers", h.listTransfers)
		wallet.POST("/reinvest", h.reinvest)
		wallet.POST("/donate", h.donate)
		wallet.POST("/gift", h.gift)
		wallet.GET("/engagement", h.getEngagementStats)
	}
}

// getBalance godoc
// @Summary Get wallet balance
// @Description Returns the balance derived from reward and ledger aggregates.
// @Tags wallet
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallet/balance [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	balance, err := h.walletService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to derive balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{UserID: userID, Balance: balance})
}

// getSummary godoc
// @Summary Get wallet summary
// @Description Returns the balance with its component aggregates.
// @Tags wallet
// @Produce json
// @Success 200 {object} dto.WalletSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallet/summary [get]
func (h *walletHandler) getSummary(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.walletService.GetWalletSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to build wallet summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// listTransfers godoc
// @Summary List ledger history
// @Description Returns the user's ledger records, newest first, keyset paginated.
// @Tags wallet
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListTransfersResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallet/transfers [get]
func (h *walletHandler) listTransfers(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListTransfersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.walletService.ListTransfers(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list transfers")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reinvest godoc
// @Summary Reinvest wallet funds into a project
// @Tags wallet
// @Accept json
// @Produce json
// @Param reinvest body dto.ReinvestRequest true "Reinvestment details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /wallet/reinvest [post]
func (h *walletHandler) reinvest(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ReinvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	transfer, err := h.engagementService.Reinvest(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to reinvest")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// donate godoc
// @Summary Donate wallet funds
// @Tags wallet
// @Accept json
// @Produce json
// @Param donate body dto.DonateRequest true "Donation details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /wallet/donate [post]
func (h *walletHandler) donate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	transfer, err := h.engagementService.Donate(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to donate")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// gift godoc
// @Summary Gift wallet funds to another user
// @Description Moves funds between wallets in a single committed record.
// @Tags wallet
// @Accept json
// @Produce json
// @Param gift body dto.GiftRequest true "Gift details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Recipient not found"
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Security BearerAuth
// @Router /wallet/gift [post]
func (h *walletHandler) gift(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.GiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	transfer, err := h.engagementService.Gift(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to gift")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// getEngagementStats godoc
// @Summary Get engagement totals
// @Tags wallet
// @Produce json
// @Success 200 {object} dto.EngagementStatsResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /wallet/engagement [get]
func (h *walletHandler) getEngagementStats(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	stats, err := h.engagementService.GetEngagementStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to build engagement stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// registerAdminWalletRoutes registers the admin credit route.
func registerAdminWalletRoutes(rg *gin.RouterGroup, ws portssvc.WalletSvcFacade) {
	h := &walletHandler{walletService: ws}
	rg.POST("/users/:id/credit", h.creditUser)
}

// creditUser godoc
// @Summary Credit a user's wallet (admin)
// @Description Appends a credit record of the given kind to the target wallet.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param credit body dto.CreditRequest true "Credit details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /admin/users/{id}/credit [post]
func (h *walletHandler) creditUser(c *gin.Context) {
	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	transfer, err := h.walletService.Credit(c.Request.Context(), c.Param("id"), req, adminUserID)
	if err != nil {
		respondError(c, err, "Failed to credit wallet")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}
