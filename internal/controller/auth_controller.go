package controller

import (
	"errors"

	"github.com/Cleverson128/METODO-VAP/internal/service"
	"github.com/Cleverson128/METODO-VAP/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService  *service.AuthService
	UserService  *service.UserService
	StudyService *service.StudyService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService, studyService *service.StudyService) *AuthController {
	return &AuthController{
		AuthService:  authService,
		UserService:  userService,
		StudyService: studyService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Authenticate a student
// @Description Validates credentials and returns a JWT plus the user aggregate
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "Invalid credentials"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) || errors.Is(err, util.ErrAccountDisabled) {
			util.Error(ctx, 401, "E-mail ou senha incorretos")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// A session left open by a dead client is finalized now, so its
	// time is never lost and a fresh session can start.
	if _, err := c.StudyService.EndSession(user.ID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout godoc
// @Summary Log out
// @Description Finalizes any active study session before the client goes away
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if _, err := c.StudyService.EndSession(claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// Me godoc
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.UserService.GetUserByID(claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, user)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ChangePassword godoc
// @Summary Change password
// @Description Replaces the password and clears the one-time-password flag
// @Tags auth
// @Accept json
// @Produce json
// @Param body body ChangePasswordRequest true "Passwords"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response "Wrong current password"
// @Security ApiKeyAuth
// @Router /api/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AuthService.ChangePassword(claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(ctx, 401, "Senha atual incorreta")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
