package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sunyield/sunyield_backend/internal/core/ports/services"
	"github.com/sunyield/sunyield_backend/internal/dto"
	"github.com/sunyield/sunyield_backend/internal/middleware"
)

// kycHandler handles KYC submission and admin review.
type kycHandler struct {
	kycService portssvc.KYCSvcFacade
}

func newKYCHandler(ks portssvc.KYCSvcFacade) *kycHandler {
	return &kycHandler{kycService: ks}
}

// registerKYCRoutes registers the authenticated KYC routes.
func registerKYCRoutes(rg *gin.RouterGroup, ks portssvc.KYCSvcFacade) {
	h := newKYCHandler(ks)

	kyc := rg.Group("/kyc")
	{
		kyc.POST("", h.submitKYC)
		kyc.GET("/me", h.getMySubmission)
	}
}

// registerAdminKYCRoutes registers the admin KYC routes.
func registerAdminKYCRoutes(rg *gin.RouterGroup, ks portssvc.KYCSvcFacade) {
	h := newKYCHandler(ks)

	kyc := rg.Group("/kyc")
	{
		kyc.GET("/pending", h.listPendingSubmissions)
		kyc.POST("/:id/review", h.reviewSubmission)
	}
}

// submitKYC godoc
// @Summary Submit KYC documents
// @Description Records a submission and moves the user's KYC status to PENDING.
// @Tags kyc
// @Accept json
// @Produce json
// @Param submission body dto.SubmitKYCRequest true "KYC details"
// @Success 201 {object} dto.KYCSubmissionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already approved or pending review"
// @Security BearerAuth
// @Router /kyc [post]
func (h *kycHandler) submitKYC(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SubmitKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	submission, err := h.kycService.SubmitKYC(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to submit KYC")
		return
	}

	c.JSON(http.StatusCreated, dto.ToKYCSubmissionResponse(submission))
}

// getMySubmission godoc
// @Summary Get the authenticated user's latest KYC submission
// @Tags kyc
// @Produce json
// @Success 200 {object} dto.KYCSubmissionResponse
// @Failure 404 {object} ErrorResponse "No submission yet"
// @Security BearerAuth
// @Router /kyc/me [get]
func (h *kycHandler) getMySubmission(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	submission, err := h.kycService.GetSubmissionByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve KYC submission")
		return
	}

	c.JSON(http.StatusOK, dto.ToKYCSubmissionResponse(submission))
}

// listPendingSubmissions godoc
// @Summary List KYC submissions awaiting review (admin)
// @Tags admin
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.KYCSubmissionResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/kyc/pending [get]
func (h *kycHandler) listPendingSubmissions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	submissions, err := h.kycService.ListPendingSubmissions(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list pending submissions")
		return
	}

	responses := make([]dto.KYCSubmissionResponse, len(submissions))
	for i, s := range submissions {
		responses[i] = dto.ToKYCSubmissionResponse(&s)
	}
	c.JSON(http.StatusOK, responses)
}

// reviewSubmission godoc
// @Summary Review a KYC submission (admin)
// @Description Approves or rejects the submission and updates the user's KYC status.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param review body dto.ReviewKYCRequest true "Review decision"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/kyc/{id}/review [post]
func (h *kycHandler) reviewSubmission(c *gin.Context) {
	adminUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ReviewKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.kycService.ReviewSubmission(c.Request.Context(), c.Param("id"), req, adminUserID); err != nil {
		respondError(c, err, "Failed to review submission")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Submission reviewed"})
}
