package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
)

// NewsController handles news and engagement
type NewsController struct {
	newsService services.NewsService
}

// NewNewsController creates a new NewsController
func NewNewsController(newsService services.NewsService) *NewsController {
	return &NewsController{
		newsService: newsService,
	}
}

// ListNews lists news newest first with engagement counters
// @Summary List news
// @Tags news
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.NewsResponse} "News retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /news [get]
func (c *NewsController) ListNews(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	items, err := c.newsService.ListNewsWithEngagement(ctx.Request.Context(), memberID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(items, "News retrieved successfully"))
}

// CreateNews publishes a news item authored by the caller
// @Summary Publish news
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateNewsRequest true "News content"
// @Success 201 {object} dto.APIResponse{data=dto.NewsResponse} "News published successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /news [post]
func (c *NewsController) CreateNews(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	var req dto.CreateNewsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	item, err := c.newsService.CreateNews(ctx.Request.Context(), memberID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(item, "News published successfully"))
}

// ToggleLike flips the caller's like on a news item
// @Summary Like or unlike news
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeStateResponse} "Like toggled"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "News not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /news/{id}/like [post]
func (c *NewsController) ToggleLike(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	state, err := c.newsService.ToggleLike(ctx.Request.Context(), ctx.Param("id"), memberID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(state, "Like toggled"))
}

// RecordView counts a view. It always answers 204.
// @Summary Record a news view
// @Tags news
// @Security BearerAuth
// @Param id path string true "News ID"
// @Success 204 "View recorded"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /news/{id}/views [post]
func (c *NewsController) RecordView(ctx *gin.Context) {
	c.newsService.RecordView(ctx.Request.Context(), ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}

// ListComments lists a news item's comments newest first
// @Summary List comments
// @Tags news
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Comments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /news/{id}/comments [get]
func (c *NewsController) ListComments(ctx *gin.Context) {
	comments, err := c.newsService.ListComments(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments, "Comments retrieved successfully"))
}

// AddComment comments on a news item as the caller
// @Summary Add a comment
// @Tags news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "News ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.AddCommentResponse} "Comment added"
// @Failure 400 {object} dto.ErrorResponse "Empty or invalid comment"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "News not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /news/{id}/comments [post]
func (c *NewsController) AddComment(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.newsService.AddComment(ctx.Request.Context(), ctx.Param("id"), memberID, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Comment added"))
}
