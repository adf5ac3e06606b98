package controller

import (
	"errors"
	"strconv"

	"github.com/Cleverson128/METODO-VAP/internal/service"
	"github.com/Cleverson128/METODO-VAP/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ProgressService *service.ProgressService
	Gamification    *service.GamificationService
	ContentService  *service.ContentService
}

func NewModuleController(
	progressService *service.ProgressService,
	gamification *service.GamificationService,
	contentService *service.ContentService,
) *ModuleController {
	return &ModuleController{
		ProgressService: progressService,
		Gamification:    gamification,
		ContentService:  contentService,
	}
}

// ListModules godoc
// @Summary Course catalog with per-user state
// @Description Modules in unlock order with locked/completed flags, study time and exercise score
// @Tags modules
// @Produce json
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/modules [get]
func (c *ModuleController) ListModules(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	views, err := c.ProgressService.ModulesForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, views)
}

// CompleteModule godoc
// @Summary Mark a module completed
// @Description Awards the module's points, recomputes the level and unlocks the next module. Repeating the call changes nothing.
// @Tags modules
// @Produce json
// @Param id path int true "Module id"
// @Success 200 {object} util.Response
// @Failure 423 {object} util.Response "Module still locked"
// @Security ApiKeyAuth
// @Router /api/modules/{id}/complete [post]
func (c *ModuleController) CompleteModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	result, err := c.Gamification.CompleteModule(claims.UserID, uint(moduleID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAlreadyCompleted):
			// Idempotent guard: repeating a completion is success with
			// no additional effect.
			util.Success(ctx, gin.H{"alreadyCompleted": true})
		case errors.Is(err, util.ErrModuleLocked):
			util.Error(ctx, 423, "Complete os módulos anteriores para desbloquear este conteúdo")
		case errors.Is(err, util.ErrModuleNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

type SubmitExerciseRequest struct {
	Score          int `json:"score" binding:"min=0"`
	TotalQuestions int `json:"totalQuestions" binding:"required,min=1"`
}

// SubmitExercise godoc
// @Summary Submit an exercise result
// @Description Replaces any earlier result for the module (last write wins)
// @Tags modules
// @Accept json
// @Produce json
// @Param id path int true "Module id"
// @Param body body SubmitExerciseRequest true "Result"
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/modules/{id}/exercise [post]
func (c *ModuleController) SubmitExercise(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	var req SubmitExerciseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.RecordExerciseResult(claims.UserID, uint(moduleID), req.Score, req.TotalQuestions)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidScore):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrModuleNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// Summary godoc
// @Summary Dashboard summary
// @Tags modules
// @Produce json
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/progress [get]
func (c *ModuleController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.ProgressService.SummaryForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// UploadVideo godoc
// @Summary Upload a module video (admin)
// @Description Stores the video and refreshes the module's estimated minutes from the probed duration
// @Tags admin
// @Accept mpfd
// @Produce json
// @Param id path int true "Module id"
// @Param file formData file true "Video file"
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/admin/modules/{id}/video [post]
func (c *ModuleController) UploadVideo(ctx *gin.Context) {
	moduleID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	module, err := c.ContentService.UploadModuleVideo(ctx.Request.Context(), uint(moduleID), file)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, module)
}

// UploadExercise godoc
// @Summary Upload a module exercise sheet (admin)
// @Tags admin
// @Accept mpfd
// @Produce json
// @Param id path int true "Module id"
// @Param file formData file true "Exercise file"
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/admin/modules/{id}/exercise [post]
func (c *ModuleController) UploadExercise(ctx *gin.Context) {
	moduleID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	module, err := c.ContentService.UploadExerciseFile(ctx.Request.Context(), uint(moduleID), file)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, module)
}
