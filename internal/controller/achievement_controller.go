package controller

import (
	"strconv"

	"github.com/Cleverson128/METODO-VAP/internal/service"
	"github.com/Cleverson128/METODO-VAP/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	Gamification *service.GamificationService
}

func NewAchievementController(gamification *service.GamificationService) *AchievementController {
	return &AchievementController{Gamification: gamification}
}

// ListAchievements godoc
// @Summary Achievement catalog with the caller's unlocks
// @Tags achievements
// @Produce json
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/achievements [get]
func (c *AchievementController) ListAchievements(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	achievements, err := c.Gamification.GetUserAchievements(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, achievements)
}

// Leaderboard godoc
// @Summary Top students by points
// @Tags achievements
// @Produce json
// @Param limit query int false "Number of entries (default 10, max 50)"
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/leaderboard [get]
func (c *AchievementController) Leaderboard(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	entries, err := c.Gamification.GetLeaderboard(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
