package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunyield/sunyield_backend/internal/core/domain"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// subscriptionHandler handles project subscriptions and their settlement.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
	paymentService      portssvc.PaymentGatewaySvc
}

func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade, ps portssvc.PaymentGatewaySvc) *subscriptionHandler {
	return &subscriptionHandler{subscriptionService: ss, paymentService: ps}
}

// registerSubscriptionRoutes registers the authenticated subscription routes.
func registerSubscriptionRoutes(rg *gin.RouterGroup, ss portssvc.SubscriptionSvcFacade, ps portssvc.PaymentGatewaySvc) {
	h := newSubscriptionHandler(ss, ps)

	subs := rg.Group("/subscriptions")
	{
		subs.POST("", h.subscribe)
		subs.GET("", h.listMySubscriptions)
		subs.GET("/:id", h.getSubscription)
		// Drives the simulated gateway to resolve the order, then processes
		// the resulting settlement exactly like the webhook path would.
		subs.POST("/orders/:orderID/settle", h.settleOrder)
	}
}

// registerPaymentWebhookRoutes registers the unauthenticated gateway callback.
func registerPaymentWebhookRoutes(r *gin.Engine, ss portssvc.SubscriptionSvcFacade) {
	h := &subscriptionHandler{subscriptionService: ss}
	r.POST("/webhooks/payment", h.paymentWebhook)
}

// subscribe godoc
// @Summary Subscribe to a project
// @Description Creates a PENDING subscription with a gateway order for the payable amount.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscribe body dto.SubscribeRequest true "Subscription details"
// @Success 201 {object} dto.SubscribeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 422 {object} ErrorResponse "Below minimum contribution or project not active"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *subscriptionHandler) subscribe(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.subscriptionService.Subscribe(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to subscribe")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// listMySubscriptions godoc
// @Summary List the authenticated user's subscriptions
// @Tags subscriptions
// @Produce json
// @Success 200 {array} dto.SubscriptionResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *subscriptionHandler) listMySubscriptions(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	subs, err := h.subscriptionService.ListSubscriptionsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list subscriptions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSubscriptionsResponse(subs))
}

// getSubscription godoc
// @Summary Get a subscription by ID
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/{id} [get]
func (h *subscriptionHandler) getSubscription(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	sub, err := h.subscriptionService.GetSubscriptionByID(c.Request.Context(), c.Param("id"), userID, false)
	if err != nil {
		respondError(c, err, "Failed to retrieve subscription")
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// settleOrder godoc
// @Summary Settle a pending gateway order
// @Description Resolves the simulated gateway order and applies the settlement to the subscription.
// @Tags subscriptions
// @Produce json
// @Param orderID path string true "Gateway order ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} ErrorResponse "Order not found"
// @Failure 409 {object} ErrorResponse "Order already settled"
// @Security BearerAuth
// @Router /subscriptions/orders/{orderID}/settle [post]
func (h *subscriptionHandler) settleOrder(c *gin.Context) {
	ctx := c.Request.Context()

	event, err := h.paymentService.SettleOrder(ctx, c.Param("orderID"))
	if err != nil {
		respondError(c, err, "Failed to settle order")
		return
	}

	sub, err := h.subscriptionService.HandleSettlement(ctx, *event)
	if err != nil {
		respondError(c, err, "Failed to apply settlement")
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// paymentWebhook godoc
// @Summary Gateway settlement webhook
// @Description Receives the gateway's settlement callback and applies it to the linked subscription.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param event body dto.SettlementWebhookRequest true "Settlement event"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown order"
// @Failure 409 {object} ErrorResponse "Already settled"
// @Router /webhooks/payment [post]
func (h *subscriptionHandler) paymentWebhook(c *gin.Context) {
	var req dto.SettlementWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	event := domain.SettlementEvent{
		OrderID: req.OrderID,
		Amount:  req.Amount,
		Status:  req.Status,
	}

	sub, err := h.subscriptionService.HandleSettlement(c.Request.Context(), event)
	if err != nil {
		respondError(c, err, "Failed to apply settlement")
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}
