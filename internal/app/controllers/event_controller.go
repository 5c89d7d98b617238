package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnihub/internal/app/directory"
	"github.com/yigit/alumnihub/internal/app/models/dto"
	"github.com/yigit/alumnihub/internal/app/services"
	"github.com/yigit/alumnihub/internal/middleware"
)

// EventController handles events and registrations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// ListEvents lists events with registration counts and the caller's registration state
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param q query string false "Free text over title and description"
// @Param category query string false "Category"
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	var req dto.EventListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.eventService.ListEventsWithCounts(ctx.Request.Context(), memberID, directory.EventQuery{
		Text:     req.Q,
		Category: req.Category,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Events retrieved successfully"))
}

// GetEvent returns one event with its registration state
// @Summary Get event details
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	event, err := c.eventService.GetEvent(ctx.Request.Context(), ctx.Param("id"), memberID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, "Event retrieved successfully"))
}

// CreateEvent creates an event organized by the caller
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), memberID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event, "Event created successfully"))
}

// Register registers the caller for an event
// @Summary Register for an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registered successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Already registered, event closed or event full"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/registrations [post]
func (c *EventController) Register(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	resp, err := c.eventService.Register(ctx.Request.Context(), ctx.Param("id"), memberID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Registered successfully"))
}

// CancelRegistration removes the caller's registration. Cancelling twice succeeds.
// @Summary Cancel an event registration
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration cancelled"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/registrations [delete]
func (c *EventController) CancelRegistration(ctx *gin.Context) {
	memberID, ok := middleware.MemberID(ctx)
	if !ok {
		return
	}

	resp, err := c.eventService.Cancel(ctx.Request.Context(), ctx.Param("id"), memberID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Registration cancelled"))
}
