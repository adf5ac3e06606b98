package controller

import (
	"crypto/subtle"
	"net/http"

	"github.com/Cleverson128/METODO-VAP/internal/config"
	"github.com/Cleverson128/METODO-VAP/internal/service"
	"github.com/Cleverson128/METODO-VAP/internal/util"
	"github.com/Cleverson128/METODO-VAP/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookController receives purchase notifications from Hotmart and
// provisions student accounts.
type WebhookController struct {
	AuthService *service.AuthService
	Config      *config.Config
}

func NewWebhookController(authService *service.AuthService, cfg *config.Config) *WebhookController {
	return &WebhookController{AuthService: authService, Config: cfg}
}

type HotmartPurchasePayload struct {
	Event string `json:"event"`
	Data  struct {
		Buyer struct {
			Email string `json:"email" binding:"required,email"`
			Name  string `json:"name"`
		} `json:"buyer" binding:"required"`
	} `json:"data" binding:"required"`
}

// HotmartPurchase godoc
// @Summary Hotmart purchase webhook
// @Description Provisions a student account for the buyer. Repeated notifications for the same e-mail are acknowledged without changes.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param X-Hotmart-Hottok header string true "Shared webhook token"
// @Param body body HotmartPurchasePayload true "Purchase event"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/webhooks/hotmart [post]
func (c *WebhookController) HotmartPurchase(ctx *gin.Context) {
	token := ctx.GetHeader("X-Hotmart-Hottok")
	secret := c.Config.Hotmart.WebhookSecret
	if secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
		logger.Log.Warn("hotmart webhook rejected", zap.String("ip", ctx.ClientIP()))
		util.Unauthorized(ctx)
		return
	}

	var payload HotmartPurchasePayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	created, oneTimePassword, err := c.AuthService.ProvisionAccount(payload.Data.Buyer.Email, payload.Data.Buyer.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	logger.Log.Info("hotmart purchase processed",
		zap.String("email", payload.Data.Buyer.Email),
		zap.Bool("created", created))

	// Hotmart retries anything but 200, so an already-provisioned buyer
	// is acknowledged as a success.
	ctx.JSON(http.StatusOK, util.Response{
		Code:    http.StatusOK,
		Message: "ok",
		Data: gin.H{
			"created":         created,
			"oneTimePassword": oneTimePassword,
		},
	})
}
