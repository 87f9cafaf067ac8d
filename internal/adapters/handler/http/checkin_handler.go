package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cadenceapp/cadence-insights-engine/internal/adapters/handler/http/middleware"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/services"
)

type CheckInHandler struct {
	svc *services.CheckInService
}

func NewCheckInHandler(svc *services.CheckInService) *CheckInHandler {
	return &CheckInHandler{
		svc: svc,
	}
}

type logGoalCheckInRequest struct {
	GoalID string  `json:"goal_id" binding:"required"`
	Date   string  `json:"date" binding:"required"`
	Done   bool    `json:"done"`
	Value  float64 `json:"value"`
	Note   string  `json:"note"`
}

type logStreakCheckInRequest struct {
	StreakID string `json:"streak_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Done     bool   `json:"done"`
	Note     string `json:"note"`
}

func (h *CheckInHandler) RegisterRoutes(router *gin.RouterGroup) {
	checkIns := router.Group("/checkins")
	{
		checkIns.POST("/goal", h.LogGoal)
		checkIns.POST("/streak", h.LogStreak)
		checkIns.GET("", h.ListByGoal)
		checkIns.DELETE("/:id", h.Delete)
	}
}

// LogGoal godoc
// @Summary Record a check-in against a goal
// @Tags checkins
// @Accept json
// @Produce json
// @Param request body logGoalCheckInRequest true "check-in payload"
// @Success 201 {object} domain.CheckIn
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /checkins/goal [post]
func (h *CheckInHandler) LogGoal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req logGoalCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	day, err := domain.ParseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.LogGoalCheckInInput{
		GoalID: req.GoalID,
		UserID: userID,
		Day:    day,
		Done:   req.Done,
		Value:  req.Value,
		Note:   req.Note,
	}

	checkIn, err := h.svc.LogGoalCheckIn(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, checkIn)
}

// LogStreak godoc
// @Summary Record a check-in against a streak membership
// @Tags checkins
// @Accept json
// @Produce json
// @Param request body logStreakCheckInRequest true "check-in payload"
// @Success 201 {object} domain.CheckIn
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /checkins/streak [post]
func (h *CheckInHandler) LogStreak(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req logStreakCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	day, err := domain.ParseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.LogStreakCheckInInput{
		StreakID: req.StreakID,
		UserID:   userID,
		Day:      day,
		Done:     req.Done,
		Note:     req.Note,
	}

	checkIn, err := h.svc.LogStreakCheckIn(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, checkIn)
}

// ListByGoal godoc
// @Summary List a goal's check-ins over a date range
// @Tags checkins
// @Produce json
// @Param goal_id query string true "goal id"
// @Param from query string false "range start (YYYY-MM-DD)"
// @Param to query string false "range end (YYYY-MM-DD)"
// @Success 200 {array} domain.CheckIn
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /checkins [get]
func (h *CheckInHandler) ListByGoal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	goalID := c.Query("goal_id")
	if goalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "goal_id is required"})
		return
	}

	rng, err := domain.ResolveRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.svc.ListByGoalID(c.Request.Context(), goalID, userID, rng.From, rng.To)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Delete godoc
// @Summary Soft-delete a check-in, freeing its day
// @Tags checkins
// @Param id path string true "check-in id"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /checkins/{id} [delete]
func (h *CheckInHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrGoalNotFound) || errors.Is(err, domain.ErrCheckInNotFound) ||
		errors.Is(err, domain.ErrStreakNotFound) || errors.Is(err, domain.ErrNotMember):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, domain.ErrGoalConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "version conflict",
			"message": "data has been modified elsewhere, please refresh",
		})

	case errors.Is(err, domain.ErrCheckInConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "check-in already recorded for this day"})

	case errors.Is(err, domain.ErrAlreadyMember):
		c.JSON(http.StatusConflict, gin.H{"error": "already a member of this streak"})

	case errors.Is(err, domain.ErrGoalArchived):
		c.JSON(http.StatusConflict, gin.H{"error": "goal is archived"})

	case errors.Is(err, domain.ErrCheckInInvalidSubject) || errors.Is(err, domain.ErrCheckInInvalidValue) ||
		errors.Is(err, domain.ErrCheckInInvalidDay) || errors.Is(err, domain.ErrInvalidDate) ||
		errors.Is(err, domain.ErrInvalidRange) || errors.Is(err, domain.ErrInvalidPeriod) ||
		errors.Is(err, domain.ErrInvalidGranularity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
