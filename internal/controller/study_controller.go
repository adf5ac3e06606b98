package controller

import (
	"errors"

	"github.com/Cleverson128/METODO-VAP/internal/service"
	"github.com/Cleverson128/METODO-VAP/internal/util"

	"github.com/gin-gonic/gin"
)

type StudyController struct {
	StudyService *service.StudyService
}

func NewStudyController(studyService *service.StudyService) *StudyController {
	return &StudyController{StudyService: studyService}
}

type StartSessionRequest struct {
	ModuleID uint `json:"moduleId" binding:"required"`
}

// StartSession godoc
// @Summary Start a study session
// @Description Opens the user's single active session against a module
// @Tags study
// @Accept json
// @Produce json
// @Param body body StartSessionRequest true "Module"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "A session is already active"
// @Failure 423 {object} util.Response "Module still locked"
// @Security ApiKeyAuth
// @Router /api/sessions/start [post]
func (c *StudyController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.StudyService.StartSession(claims.UserID, req.ModuleID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionActive):
			util.Error(ctx, 409, "Você já tem uma sessão de estudo ativa")
		case errors.Is(err, util.ErrModuleLocked):
			util.Error(ctx, 423, "Complete os módulos anteriores para desbloquear este conteúdo")
		case errors.Is(err, util.ErrModuleNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, session)
}

// EndSession godoc
// @Summary End the active study session
// @Description Finalizes the active session; a no-op when none is active
// @Tags study
// @Produce json
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/sessions/end [post]
func (c *StudyController) EndSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.StudyService.EndSession(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// session is nil when nothing was active; that's still success.
	util.Success(ctx, session)
}

// ActiveSession godoc
// @Summary Get the active study session
// @Tags study
// @Produce json
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/sessions/active [get]
func (c *StudyController) ActiveSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.StudyService.ActiveSession(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, session)
}
