package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mensah/schoolms/internal/app/models/dto"
	"github.com/mensah/schoolms/internal/app/services"
	"github.com/mensah/schoolms/internal/middleware"
)

// FeedbackController handles feedback submissions
type FeedbackController struct {
	feedbackService services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// Create records a feedback message from the authenticated user
func (c *FeedbackController) Create(ctx *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	userID := ctx.GetString(middleware.ContextUserID)
	feedback, err := c.feedbackService.Create(req.Content, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(feedback, "Feedback recorded"))
}

// List returns every feedback message
func (c *FeedbackController) List(ctx *gin.Context) {
	feedbacks, err := c.feedbackService.List()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(feedbacks, ""))
}

// ListForUser returns the feedback messages left by one user
func (c *FeedbackController) ListForUser(ctx *gin.Context) {
	feedbacks, err := c.feedbackService.ListForUser(ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(feedbacks, ""))
}

// Delete removes a feedback message
func (c *FeedbackController) Delete(ctx *gin.Context) {
	if err := c.feedbackService.Delete(ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Feedback deleted"})
}
