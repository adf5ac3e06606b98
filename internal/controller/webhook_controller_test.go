package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Cleverson128/METODO-VAP/internal/config"
	"github.com/Cleverson128/METODO-VAP/internal/repository"
	"github.com/Cleverson128/METODO-VAP/internal/service"
	"github.com/Cleverson128/METODO-VAP/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testWebhookSecret = "hottok-test-secret"

func newWebhookRouter(t *testing.T) (*gin.Engine, *repository.UserRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.JWT.Secret = "test-secret-test-secret-test-secret!"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Hotmart.WebhookSecret = testWebhookSecret

	users := repository.NewUserRepository(db)
	auth := service.NewAuthService(users, cfg)
	webhook := NewWebhookController(auth, cfg)

	router := gin.New()
	router.POST("/api/webhooks/hotmart", webhook.HotmartPurchase)
	return router, users
}

func postPurchase(router *gin.Engine, token, email, name string) *httptest.ResponseRecorder {
	body := `{"event":"PURCHASE_APPROVED","data":{"buyer":{"email":"` + email + `","name":"` + name + `"}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/hotmart", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Hotmart-Hottok", token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHotmartWebhook_RejectsBadToken(t *testing.T) {
	router, users := newWebhookRouter(t)

	w := postPurchase(router, "wrong-token", "comprador@example.com", "Comprador")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postPurchase(router, "", "comprador@example.com", "Comprador")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, err := users.FindByEmail("comprador@example.com")
	assert.Error(t, err)
}

func TestHotmartWebhook_ProvisionsBuyer(t *testing.T) {
	router, users := newWebhookRouter(t)

	w := postPurchase(router, testWebhookSecret, "comprador@example.com", "Comprador VAP")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Created         bool   `json:"created"`
			OneTimePassword string `json:"oneTimePassword"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Created)
	assert.NotEmpty(t, envelope.Data.OneTimePassword)

	user, err := users.FindByEmail("comprador@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Comprador VAP", user.Name)
	assert.True(t, user.TempPassword)
}

func TestHotmartWebhook_RepeatNotificationAcknowledged(t *testing.T) {
	router, _ := newWebhookRouter(t)

	w := postPurchase(router, testWebhookSecret, "repetido@example.com", "Aluno")
	require.Equal(t, http.StatusOK, w.Code)

	// Hotmart retries on anything but 200, so the duplicate must still
	// succeed.
	w = postPurchase(router, testWebhookSecret, "repetido@example.com", "Aluno")
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Created bool `json:"created"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.Created)
}

func TestHotmartWebhook_RejectsMalformedPayload(t *testing.T) {
	router, _ := newWebhookRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/hotmart", strings.NewReader(`{"event":"PURCHASE_APPROVED"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Hotmart-Hottok", testWebhookSecret)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
