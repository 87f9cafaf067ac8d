package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cadenceapp/cadence-insights-engine/internal/adapters/handler/http/middleware"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/services"
)

type StreakHandler struct {
	svc *services.StreakService
}

func NewStreakHandler(svc *services.StreakService) *StreakHandler {
	return &StreakHandler{
		svc: svc,
	}
}

type createStreakRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *StreakHandler) RegisterRoutes(router *gin.RouterGroup) {
	streaks := router.Group("/streaks")
	{
		streaks.POST("", h.Create)
		streaks.GET("", h.List)
		streaks.POST("/:id/join", h.Join)
		streaks.GET("/:id/members", h.Members)
		streaks.GET("/:id/members/:memberId/runs", h.MemberRuns)
	}
}

// Create godoc
// @Summary Create a streak, enrolling the creator
// @Tags streaks
// @Accept json
// @Produce json
// @Param request body createStreakRequest true "streak payload"
// @Success 201 {object} domain.Streak
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /streaks [post]
func (h *StreakHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createStreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	streak, err := h.svc.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrStreakNameEmpty) || errors.Is(err, domain.ErrStreakNameTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, streak)
}

// List godoc
// @Summary List the streaks the user belongs to
// @Tags streaks
// @Produce json
// @Success 200 {array} domain.Streak
// @Security BearerAuth
// @Router /streaks [get]
func (h *StreakHandler) List(c *gin.Context) {
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

// Join godoc
// @Summary Join a streak
// @Tags streaks
// @Produce json
// @Param id path string true "streak id"
// @Success 201 {object} domain.StreakMember
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /streaks/{id}/join [post]
func (h *StreakHandler) Join(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	member, err := h.svc.Join(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// Members godoc
// @Summary List a streak's members, join order, members only
// @Tags streaks
// @Produce json
// @Param id path string true "streak id"
// @Success 200 {array} domain.StreakMember
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /streaks/{id}/members [get]
func (h *StreakHandler) Members(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	members, err := h.svc.Members(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// MemberRuns godoc
// @Summary A member's run stats computed from their check-in history
// @Tags streaks
// @Produce json
// @Param id path string true "streak id"
// @Param memberId path string true "member user id"
// @Success 200 {object} services.MemberStats
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /streaks/{id}/members/{memberId}/runs [get]
func (h *StreakHandler) MemberRuns(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.svc.MemberRunStats(c.Request.Context(), c.Param("id"), userID, c.Param("memberId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
