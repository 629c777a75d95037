package handlers

import (
	"net/http"

	"snack_factory_backend/internal/middleware"
	"snack_factory_backend/internal/services"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler holds the feedback service.
type FeedbackHandler struct {
	feedbackService services.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(fs services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: fs}
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	var req services.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateFeedback: Failed to bind JSON")
		return
	}

	feedback, err := h.feedbackService.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		respondServiceError(c, err, "CreateFeedback: Error from feedbackService.Create")
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, "Feedback submitted successfully", feedback)
}

func (h *FeedbackHandler) GetAll(c *gin.Context) {
	feedback, err := h.feedbackService.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetAllFeedback: Error from feedbackService.GetAll")
		return
	}
	utils.RespondList(c, feedback, len(feedback))
}

func (h *FeedbackHandler) MyFeedback(c *gin.Context) {
	feedback, err := h.feedbackService.GetByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err, "MyFeedback: Error from feedbackService.GetByUser")
		return
	}
	utils.RespondList(c, feedback, len(feedback))
}

func (h *FeedbackHandler) GetByID(c *gin.Context) {
	feedback, err := h.feedbackService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetFeedbackByID: Error from feedbackService.GetByID")
		return
	}
	utils.RespondOK(c, feedback)
}

func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
	var req services.UpdateFeedbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateFeedbackStatus: Failed to bind JSON")
		return
	}

	feedback, err := h.feedbackService.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateFeedbackStatus: Error from feedbackService.UpdateStatus")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Feedback status updated successfully", feedback)
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	if err := h.feedbackService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteFeedback: Error from feedbackService.Delete")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "Feedback deleted successfully", nil)
}

// Stats returns the rating overview.
func (h *FeedbackHandler) Stats(c *gin.Context) {
	stats, err := h.feedbackService.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "FeedbackStats: Error from feedbackService.Stats")
		return
	}
	utils.RespondOK(c, stats)
}
