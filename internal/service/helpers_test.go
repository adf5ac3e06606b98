package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/Cleverson128/METODO-VAP/internal/config"
	"github.com/Cleverson128/METODO-VAP/internal/model"
	"github.com/Cleverson128/METODO-VAP/internal/repository"
	"github.com/Cleverson128/METODO-VAP/pkg/database"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the full service graph against an in-memory SQLite
// database seeded with the production catalogs.
type testEnv struct {
	db *gorm.DB

	users       *repository.UserRepository
	modules     *repository.ModuleRepository
	completions *repository.CompletionRepository
	sessions    *repository.SessionRepository
	exercises   *repository.ExerciseRepository

	gamification *GamificationService
	study        *StudyService
	progress     *ProgressService
	auth         *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory
	// database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	env := &testEnv{db: db}
	env.users = repository.NewUserRepository(db)
	env.modules = repository.NewModuleRepository(db)
	env.completions = repository.NewCompletionRepository(db)
	env.sessions = repository.NewSessionRepository(db)
	env.exercises = repository.NewExerciseRepository(db)
	achievements := repository.NewAchievementRepository(db)

	env.gamification = NewGamificationService(
		env.users, env.modules, env.completions, env.sessions, env.exercises, achievements, nil)
	env.study = NewStudyService(env.sessions, env.users, env.modules, env.gamification)
	env.progress = NewProgressService(
		env.modules, env.completions, env.sessions, env.exercises, env.users, env.gamification)

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.JWT.Secret = "test-secret-test-secret-test-secret!"
	cfg.JWT.ExpireTime = time.Hour
	env.auth = NewAuthService(env.users, cfg)

	return env
}

var userSeq int

func (e *testEnv) createUser(t *testing.T) *model.User {
	t.Helper()

	userSeq++
	hashed, err := bcrypt.GenerateFromPassword([]byte("senha123!"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Name:     fmt.Sprintf("Aluno %d", userSeq),
		Email:    fmt.Sprintf("aluno%d@example.com", userSeq),
		Password: string(hashed),
		Role:     model.Student,
		Level:    1,
	}
	require.NoError(t, e.users.Create(user))
	return user
}

// completeFirstModules walks the user through the first n modules in
// catalog order.
func (e *testEnv) completeFirstModules(t *testing.T, userID string, n int) {
	t.Helper()

	modules, err := e.modules.FindAll()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(modules), n)

	for i := 0; i < n; i++ {
		_, err := e.gamification.CompleteModule(userID, modules[i].ID)
		require.NoError(t, err)
	}
}

// backdateSession rewrites a session's start time so EndSession sees a
// chosen elapsed duration.
func (e *testEnv) backdateSession(t *testing.T, sessionID uint, startedAt time.Time) {
	t.Helper()
	require.NoError(t, e.db.Model(&model.StudySession{}).
		Where("id = ?", sessionID).
		Update("started_at", startedAt).Error)
}
