package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// couponHandler handles coupon validation and admin management.
type couponHandler struct {
	couponService portssvc.CouponSvcFacade
}

func newCouponHandler(cs portssvc.CouponSvcFacade) *couponHandler {
	return &couponHandler{couponService: cs}
}

// registerCouponRoutes registers the authenticated coupon routes.
func registerCouponRoutes(rg *gin.RouterGroup, cs portssvc.CouponSvcFacade) {
	h := newCouponHandler(cs)
	rg.POST("/coupons/validate", h.validateCoupon)
}

// registerAdminCouponRoutes registers the admin coupon routes.
func registerAdminCouponRoutes(rg *gin.RouterGroup, cs portssvc.CouponSvcFacade) {
	h := newCouponHandler(cs)

	coupons := rg.Group("/coupons")
	{
		coupons.POST("", h.createCoupon)
		coupons.GET("", h.listCoupons)
		coupons.PUT("/:id", h.updateCoupon)
	}
}

// validateCoupon godoc
// @Summary Validate a coupon code against an amount
// @Tags coupons
// @Accept json
// @Produce json
// @Param validation body dto.ValidateCouponRequest true "Code and amount"
// @Success 200 {object} dto.ValidateCouponResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown code"
// @Failure 422 {object} ErrorResponse "Expired, inactive or fully redeemed"
// @Security BearerAuth
// @Router /coupons/validate [post]
func (h *couponHandler) validateCoupon(c *gin.Context) {
	var req dto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	coupon, discounted, err := h.couponService.ValidateCoupon(c.Request.Context(), req.Code, req.Amount)
	if err != nil {
		respondError(c, err, "Failed to validate coupon")
		return
	}

	c.JSON(http.StatusOK, dto.ValidateCouponResponse{
		Code:             coupon.Code,
		DiscountPercent:  coupon.DiscountPercent,
		OriginalAmount:   req.Amount,
		DiscountedAmount: discounted,
	})
}

// createCoupon godoc
// @Summary Create a coupon (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param coupon body dto.CreateCouponRequest true "Coupon details"
// @Success 201 {object} dto.CouponResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Code already exists"
// @Security BearerAuth
// @Router /admin/coupons [post]
func (h *couponHandler) createCoupon(c *gin.Context) {
	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), req, adminUserID)
	if err != nil {
		respondError(c, err, "Failed to create coupon")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCouponResponse(coupon))
}

// listCoupons godoc
// @Summary List coupons (admin)
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.CouponResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/coupons [get]
func (h *couponHandler) listCoupons(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	coupons, err := h.couponService.ListCoupons(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list coupons")
		return
	}

	responses := make([]dto.CouponResponse, len(coupons))
	for i, coupon := range coupons {
		responses[i] = dto.ToCouponResponse(&coupon)
	}
	c.JSON(http.StatusOK, responses)
}

// updateCoupon godoc
// @Summary Update a coupon (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param coupon body dto.UpdateCouponRequest true "Fields to update"
// @Success 200 {object} dto.CouponResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/coupons/{id} [put]
func (h *couponHandler) updateCoupon(c *gin.Context) {
	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), c.Param("id"), req, adminUserID)
	if err != nil {
		respondError(c, err, "Failed to update coupon")
		return
	}

	c.JSON(http.StatusOK, dto.ToCouponResponse(coupon))
}
