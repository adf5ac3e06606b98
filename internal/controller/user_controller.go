package controller

import (
	"errors"
	"strconv"

	"github.com/Cleverson128/METODO-VAP/internal/service"
	"github.com/Cleverson128/METODO-VAP/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController exposes the admin user-management surface.
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// ListUsers godoc
// @Summary Paginated user list (admin)
// @Tags admin
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param pageSize query int false "Page size (default 20)"
// @Param search query string false "Name or e-mail filter"
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))
	search := ctx.Query("search")

	users, total, err := c.UserService.ListUsers(page, pageSize, search)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"users": users,
		"total": total,
		"page":  page,
	})
}

// GetUser godoc
// @Summary User detail (admin)
// @Tags admin
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.UserService.GetUserByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// ResetPassword godoc
// @Summary Issue a new one-time password (admin)
// @Description Replaces the user's password with a generated one-time password the admin hands over out of band
// @Tags admin
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/admin/users/{id}/reset-password [post]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	oneTimePassword, err := c.UserService.ResetPassword(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"oneTimePassword": oneTimePassword})
}

type SetDisabledRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

// SetDisabled godoc
// @Summary Enable or disable an account (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param body body SetDisabledRequest true "Flag"
// @Success 200 {object} util.Response
// @Security ApiKeyAuth
// @Router /api/admin/users/{id}/disabled [put]
func (c *UserController) SetDisabled(ctx *gin.Context) {
	var req SetDisabledRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetDisabled(ctx.Param("id"), *req.Disabled); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"disabled": *req.Disabled})
}
