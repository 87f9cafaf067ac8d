package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cadenceapp/cadence-insights-engine/internal/adapters/handler/http/middleware"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/services"
)

// InsightsHandler serves the read-side analytics: per-goal progress,
// bucketed activity and the heatmap.
type InsightsHandler struct {
	progress *services.ProgressService
	metrics  *services.MetricsService
}

func NewInsightsHandler(progress *services.ProgressService, metrics *services.MetricsService) *InsightsHandler {
	return &InsightsHandler{
		progress: progress,
		metrics:  metrics,
	}
}

func (h *InsightsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/goals/:id/progress", h.GoalProgress)

	insights := router.Group("/insights")
	{
		insights.GET("/activity", h.Activity)
		insights.GET("/heatmap", h.Heatmap)
	}
}

// GoalProgress godoc
// @Summary Progress summary for one goal over a date range
// @Tags insights
// @Produce json
// @Param id path string true "goal id"
// @Param from query string false "range start (YYYY-MM-DD)"
// @Param to query string false "range end (YYYY-MM-DD)"
// @Success 200 {object} domain.GoalProgress
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /goals/{id}/progress [get]
func (h *InsightsHandler) GoalProgress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rng, err := domain.ResolveRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	progress, err := h.progress.GoalProgress(c.Request.Context(), c.Param("id"), userID, rng)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// Activity godoc
// @Summary Check-in counts bucketed by day, ISO week or month
// @Tags insights
// @Produce json
// @Param granularity query string false "day, week or month (default day)"
// @Param from query string false "range start (YYYY-MM-DD)"
// @Param to query string false "range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /insights/activity [get]
func (h *InsightsHandler) Activity(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	granularity := domain.Granularity(c.DefaultQuery("granularity", string(domain.GranularityDay)))

	rng, err := domain.ResolveRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buckets, err := h.metrics.ActivityBuckets(c.Request.Context(), userID, granularity, rng)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"granularity": granularity,
		"range":       rng,
		"buckets":     buckets,
	})
}

// Heatmap godoc
// @Summary Per-day activity heatmap across goals and streaks
// @Tags insights
// @Produce json
// @Param from query string false "range start (YYYY-MM-DD)"
// @Param to query string false "range end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /insights/heatmap [get]
func (h *InsightsHandler) Heatmap(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rng, err := domain.ResolveRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cells, err := h.progress.Heatmap(c.Request.Context(), userID, rng)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"range": rng,
		"cells": cells,
	})
}
