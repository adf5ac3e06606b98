package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Cleverson128/METODO-VAP/internal/config"
	"github.com/Cleverson128/METODO-VAP/internal/controller"
	"github.com/Cleverson128/METODO-VAP/internal/repository"
	"github.com/Cleverson128/METODO-VAP/internal/service"
	"github.com/Cleverson128/METODO-VAP/pkg/database"
	"github.com/Cleverson128/METODO-VAP/pkg/logger"
	"github.com/Cleverson128/METODO-VAP/pkg/monitoring"
	"github.com/Cleverson128/METODO-VAP/pkg/security"
	"github.com/Cleverson128/METODO-VAP/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user        *repository.UserRepository
	module      *repository.ModuleRepository
	completion  *repository.CompletionRepository
	session     *repository.SessionRepository
	exercise    *repository.ExerciseRepository
	achievement *repository.AchievementRepository
}

type services struct {
	storage      *service.StorageService
	auth         *service.AuthService
	user         *service.UserService
	gamification *service.GamificationService
	study        *service.StudyService
	progress     *service.ProgressService
	content      *service.ContentService
}

type controllers struct {
	auth        *controller.AuthController
	study       *controller.StudyController
	module      *controller.ModuleController
	achievement *controller.AchievementController
	user        *controller.UserController
	webhook     *controller.WebhookController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		module:      repository.NewModuleRepository(db),
		completion:  repository.NewCompletionRepository(db),
		session:     repository.NewSessionRepository(db),
		exercise:    repository.NewExerciseRepository(db),
		achievement: repository.NewAchievementRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.gamification = service.NewGamificationService(
		repos.user,
		repos.module,
		repos.completion,
		repos.session,
		repos.exercise,
		repos.achievement,
		rdb,
	)
	s.study = service.NewStudyService(repos.session, repos.user, repos.module, s.gamification)
	s.progress = service.NewProgressService(
		repos.module,
		repos.completion,
		repos.session,
		repos.exercise,
		repos.user,
		s.gamification,
	)
	s.content = service.NewContentService(repos.module, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user, s.study),
		study:       controller.NewStudyController(s.study),
		module:      controller.NewModuleController(s.progress, s.gamification, s.content),
		achievement: controller.NewAchievementController(s.gamification),
		user:        controller.NewUserController(s.user),
		webhook:     controller.NewWebhookController(s.auth, a.Config),
		health:      controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The leaderboard cache degrades gracefully without Redis.
		logger.Log.Warn("Redis unavailable, running without leaderboard cache", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("metodo-vap", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
