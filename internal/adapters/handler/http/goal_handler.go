package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cadenceapp/cadence-insights-engine/internal/adapters/handler/http/middleware"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/services"
)

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{
		svc: svc,
	}
}

type createGoalRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	TargetType  string  `json:"target_type"`
	TargetValue float64 `json:"target_value"`
	Unit        string  `json:"unit"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

type updateGoalRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Unit        string  `json:"unit"`
	TargetValue float64 `json:"target_value"`
	EndDate     string  `json:"end_date"`
	Version     int     `json:"version"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.POST("", h.Create)
		goals.GET("", h.List)
		goals.GET("/:id", h.Get)
		goals.PUT("/:id", h.Update)
		goals.DELETE("/:id", h.Archive)
	}
}

// parseOptionalDay turns an optional YYYY-MM-DD field into a day pointer.
func parseOptionalDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	day, err := domain.ParseDay(s)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// Create godoc
// @Summary Create a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param request body createGoalRequest true "goal payload"
// @Success 201 {object} domain.Goal
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /goals [post]
func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	var startDate time.Time
	if req.StartDate != "" {
		parsed, err := domain.ParseDay(req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		startDate = parsed
	}

	endDate, err := parseOptionalDay(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateGoalInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TargetType:  req.TargetType,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		StartDate:   startDate,
		EndDate:     endDate,
	}

	goal, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrGoalTitleEmpty) || errors.Is(err, domain.ErrGoalTitleTooLong) ||
			errors.Is(err, domain.ErrInvalidTargetType) || errors.Is(err, domain.ErrInvalidTarget) ||
			errors.Is(err, domain.ErrInvalidGoalWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// List godoc
// @Summary List the authenticated user's goals
// @Tags goals
// @Produce json
// @Success 200 {array} domain.Goal
// @Security BearerAuth
// @Router /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Fetch one goal
// @Tags goals
// @Produce json
// @Param id path string true "goal id"
// @Success 200 {object} domain.Goal
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /goals/{id} [get]
func (h *GoalHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	goal, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// Update godoc
// @Summary Update a goal with optimistic locking
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "goal id"
// @Param request body updateGoalRequest true "update payload, version required"
// @Success 200 {object} domain.Goal
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	endDate, err := parseOptionalDay(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.UpdateGoalInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
		EndDate:     endDate,
		Version:     req.Version,
	}

	goal, err := h.svc.Update(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrGoalTitleEmpty) || errors.Is(err, domain.ErrGoalTitleTooLong) ||
			errors.Is(err, domain.ErrInvalidTarget) || errors.Is(err, domain.ErrInvalidGoalWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// Archive godoc
// @Summary Archive a goal
// @Tags goals
// @Param id path string true "goal id"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /goals/{id} [delete]
func (h *GoalHandler) Archive(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.svc.Archive(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
