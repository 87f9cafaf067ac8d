package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
	"github.com/cadenceapp/cadence-insights-engine/internal/core/services"
)

type LeaderboardHandler struct {
	svc *services.RankingService
}

func NewLeaderboardHandler(svc *services.RankingService) *LeaderboardHandler {
	return &LeaderboardHandler{
		svc: svc,
	}
}

func (h *LeaderboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	leaderboard := router.Group("/leaderboard")
	{
		leaderboard.GET("/:period", h.Get)
		leaderboard.POST("/:period/recompute", h.Recompute)
	}
}

// resolvePeriod maps the "current" alias onto this week's period id.
func resolvePeriod(c *gin.Context) string {
	period := c.Param("period")
	if period == "current" {
		return domain.WeeklyPeriod(time.Now().UTC())
	}
	return period
}

// Get godoc
// @Summary Read the stored board for an ISO week
// @Tags leaderboard
// @Produce json
// @Param period path string true "period (YYYY-Www) or current"
// @Success 200 {object} domain.RankingResult
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /leaderboard/{period} [get]
func (h *LeaderboardHandler) Get(c *gin.Context) {
	result, err := h.svc.Leaderboard(c.Request.Context(), resolvePeriod(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Recompute godoc
// @Summary Rebuild the board for an ISO week and notify ranked users
// @Tags leaderboard
// @Produce json
// @Param period path string true "period (YYYY-Www) or current"
// @Success 200 {object} domain.RankingResult
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /leaderboard/{period}/recompute [post]
func (h *LeaderboardHandler) Recompute(c *gin.Context) {
	result, err := h.svc.Recompute(c.Request.Context(), resolvePeriod(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
