package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
	"github.com/yigit/alumnihub/internal/pkg/helpers"
)

// DirectoryController handles the member directory and profiles
type DirectoryController struct {
	directoryService services.DirectoryService
}

// NewDirectoryController creates a new DirectoryController
func NewDirectoryController(directoryService services.DirectoryService) *DirectoryController {
	return &DirectoryController{
		directoryService: directoryService,
	}
}

// SearchDirectory lists members matching the filters with facets over the whole directory
// @Summary Search the alumni directory
// @Description Returns facets computed over every member and the members matching all supplied filters
// @Tags directory
// @Produce json
// @Security BearerAuth
// @Param q query string false "Free text over name, company, position and major"
// @Param year query string false "Graduation year" minLength(4) maxLength(4)
// @Param industry query string false "Industry"
// @Param location query string false "Location"
// @Param page query int false "Page number (optional)" minimum(1)
// @Param size query int false "Page size (optional)" minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.DirectoryResponse} "Directory retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /directory [get]
func (c *DirectoryController) SearchDirectory(ctx *gin.Context) {
	var req dto.DirectoryRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.directoryService.Search(ctx.Request.Context(), req, helpers.PageFromQuery(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Directory retrieved successfully"))
}

// GetProfile returns a member profile
// @Summary Get a member profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} dto.APIResponse{data=models.Profile} "Profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/{id} [get]
func (c *DirectoryController) GetProfile(ctx *gin.Context) {
	profile, err := c.directoryService.GetProfile(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Profile retrieved successfully"))
}

// GetMyProfile returns the caller's own profile
// @Summary Get my profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Profile} "Profile retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /profiles/me [get]
func (c *DirectoryController) GetMyProfile(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	profile, err := c.directoryService.GetProfile(ctx.Request.Context(), memberID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Profile retrieved successfully"))
}

// UpdateMyProfile applies a partial update to the caller's own profile
// @Summary Update my profile
// @Description Only supplied fields change; an empty string clears an optional field
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Profile} "Profile updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /profiles/me [put]
func (c *DirectoryController) UpdateMyProfile(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	profile, err := c.directoryService.UpdateOwnProfile(ctx.Request.Context(), memberID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Profile updated successfully"))
}
