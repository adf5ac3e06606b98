package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Cleverson128/METODO-VAP/internal/model"
	"github.com/Cleverson128/METODO-VAP/internal/repository"
	"github.com/Cleverson128/METODO-VAP/internal/util"
	"github.com/Cleverson128/METODO-VAP/pkg/logger"
	"github.com/Cleverson128/METODO-VAP/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	pointsPerLevel      = 500
	leaderboardCacheKey = "vap:leaderboard"
	leaderboardCacheTTL = time.Minute
)

// GamificationService owns the per-user aggregate: points, level,
// completed modules and achievement unlocks. Other services report
// inputs (study time, exercise results) but never mutate the
// aggregate themselves.
type GamificationService struct {
	UserRepo        *repository.UserRepository
	ModuleRepo      *repository.ModuleRepository
	CompletionRepo  *repository.CompletionRepository
	SessionRepo     *repository.SessionRepository
	ExerciseRepo    *repository.ExerciseRepository
	AchievementRepo *repository.AchievementRepository
	Redis           *redis.Client
}

func NewGamificationService(
	userRepo *repository.UserRepository,
	moduleRepo *repository.ModuleRepository,
	completionRepo *repository.CompletionRepository,
	sessionRepo *repository.SessionRepository,
	exerciseRepo *repository.ExerciseRepository,
	achievementRepo *repository.AchievementRepository,
	rdb *redis.Client,
) *GamificationService {
	return &GamificationService{
		UserRepo:        userRepo,
		ModuleRepo:      moduleRepo,
		CompletionRepo:  completionRepo,
		SessionRepo:     sessionRepo,
		ExerciseRepo:    exerciseRepo,
		AchievementRepo: achievementRepo,
		Redis:           rdb,
	}
}

// CompletionResult reports the outcome of a module completion.
type CompletionResult struct {
	ModuleID            uint                `json:"moduleId"`
	PointsAwarded       int                 `json:"pointsAwarded"`
	TotalPoints         int                 `json:"totalPoints"`
	Level               int                 `json:"level"`
	NextModuleID        *uint               `json:"nextModuleId,omitempty"`
	UnlockedAchievement []model.Achievement `json:"unlockedAchievements"`
}

// LevelFor derives the level from total points.
func LevelFor(points int) int {
	return points/pointsPerLevel + 1
}

// CompleteModule appends moduleID to the user's completions, awards
// the module's points, recomputes the level and unlocks the next
// module in catalog order. Completing an already-completed module
// fails with ErrAlreadyCompleted and has no effect; points are never
// double-awarded.
func (s *GamificationService) CompleteModule(userID string, moduleID uint) (*CompletionResult, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		return nil, util.ErrModuleNotFound
	}

	done, err := s.CompletionRepo.Exists(userID, moduleID)
	if err != nil {
		return nil, err
	}
	if done {
		return nil, util.ErrAlreadyCompleted
	}

	unlocked, err := s.ModuleUnlocked(userID, moduleID)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, util.ErrModuleLocked
	}

	// The completion row is the idempotence anchor: until it exists,
	// nothing has been granted.
	completion := &model.ModuleCompletion{UserID: userID, ModuleID: moduleID}
	if err := s.CompletionRepo.Create(completion); err != nil {
		return nil, err
	}

	user.TotalPoints += module.Points
	user.Level = LevelFor(user.TotalPoints)

	newlyUnlocked, err := s.EvaluateAchievements(user)
	if err != nil {
		logger.Log.Warn("achievement evaluation failed after completion",
			zap.String("user", userID), zap.Uint("module", moduleID), zap.Error(err))
	}

	// Points and level are already granted in memory; a failed profile
	// save is logged and retried on the next mutation rather than
	// rolled back.
	if err := s.UserRepo.Update(user); err != nil {
		logger.Log.Error("saving user profile after completion",
			zap.String("user", userID), zap.Error(err))
	}

	s.invalidateLeaderboard()
	monitoring.ModulesCompleted.Inc()

	result := &CompletionResult{
		ModuleID:            moduleID,
		PointsAwarded:       module.Points,
		TotalPoints:         user.TotalPoints,
		Level:               user.Level,
		UnlockedAchievement: newlyUnlocked,
	}

	if next, err := s.nextModule(moduleID); err == nil && next != nil {
		result.NextModuleID = &next.ID
	}

	return result, nil
}

// EvaluateAchievements checks every locked achievement against the
// user's current aggregates and unlocks those whose condition newly
// holds. Each unlock grants its point reward exactly once; the
// transition is irreversible. The caller persists the user profile.
func (s *GamificationService) EvaluateAchievements(user *model.User) ([]model.Achievement, error) {
	catalog, err := s.AchievementRepo.FindAll()
	if err != nil {
		return nil, err
	}

	unlocks, err := s.AchievementRepo.FindUnlocksByUser(user.ID)
	if err != nil {
		return nil, err
	}
	unlockedSet := make(map[string]bool, len(unlocks))
	for _, u := range unlocks {
		unlockedSet[u.AchievementID] = true
	}

	var newly []model.Achievement
	for _, achievement := range catalog {
		if unlockedSet[achievement.ID] {
			continue
		}

		met, err := s.conditionMet(user, achievement)
		if err != nil {
			return newly, err
		}
		if !met {
			continue
		}

		unlock := &model.UserAchievement{
			UserID:        user.ID,
			AchievementID: achievement.ID,
			UnlockedAt:    time.Now(),
		}
		if err := s.AchievementRepo.Unlock(unlock); err != nil {
			logger.Log.Error("saving achievement unlock",
				zap.String("user", user.ID), zap.String("achievement", achievement.ID), zap.Error(err))
			continue
		}

		user.TotalPoints += achievement.Points
		user.Level = LevelFor(user.TotalPoints)
		newly = append(newly, achievement)
		monitoring.AchievementsUnlocked.WithLabelValues(achievement.ID).Inc()

		logger.Log.Info("achievement unlocked",
			zap.String("user", user.ID),
			zap.String("achievement", achievement.ID),
			zap.Int("reward", achievement.Points))
	}

	return newly, nil
}

func (s *GamificationService) conditionMet(user *model.User, achievement model.Achievement) (bool, error) {
	switch achievement.ConditionType {
	case model.ModulesCompleted:
		count, err := s.CompletionRepo.CountByUser(user.ID)
		if err != nil {
			return false, err
		}
		return count >= int64(achievement.ConditionGoal), nil

	case model.StudyTime:
		return user.TotalTimeStudied >= achievement.ConditionGoal, nil

	case model.Streak:
		return user.CurrentStreak >= achievement.ConditionGoal, nil

	case model.PerfectScore:
		count, err := s.ExerciseRepo.CountPerfectScores(user.ID)
		if err != nil {
			return false, err
		}
		return count >= int64(achievement.ConditionGoal), nil

	case model.Speed:
		// A single session within the limit, for a module the user has
		// actually completed.
		completions, err := s.CompletionRepo.FindByUser(user.ID)
		if err != nil {
			return false, err
		}
		for _, c := range completions {
			fast, err := s.SessionRepo.HasSessionWithin(user.ID, c.ModuleID, achievement.ConditionGoal)
			if err != nil {
				return false, err
			}
			if fast {
				return true, nil
			}
		}
		return false, nil
	}

	return false, nil
}

// ModuleUnlocked reports whether every module preceding moduleID in
// catalog order is completed. Unlock is monotonic: completions are
// append-only, so an unlocked module can never re-lock.
func (s *GamificationService) ModuleUnlocked(userID string, moduleID uint) (bool, error) {
	modules, err := s.ModuleRepo.FindAll()
	if err != nil {
		return false, err
	}

	completions, err := s.CompletionRepo.FindByUser(userID)
	if err != nil {
		return false, err
	}
	completed := make(map[uint]bool, len(completions))
	for _, c := range completions {
		completed[c.ModuleID] = true
	}

	for _, m := range modules {
		if m.ID == moduleID {
			return true, nil
		}
		if !completed[m.ID] {
			return false, nil
		}
	}
	return false, util.ErrModuleNotFound
}

func (s *GamificationService) nextModule(moduleID uint) (*model.CourseModule, error) {
	modules, err := s.ModuleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	for i, m := range modules {
		if m.ID == moduleID && i+1 < len(modules) {
			return &modules[i+1], nil
		}
	}
	return nil, nil
}

// UserAchievements is the gamification summary for the achievements
// page.
type UserAchievements struct {
	TotalPoints   int                         `json:"totalPoints"`
	Level         int                         `json:"level"`
	NextLevelAt   int                         `json:"nextLevelAt"`
	CurrentStreak int                         `json:"currentStreak"`
	Achievements  []model.UnlockedAchievement `json:"achievements"`
	Leaderboard   []LeaderboardEntry          `json:"leaderboard"`
}

type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Level  int    `json:"level"`
}

func (s *GamificationService) GetUserAchievements(userID string) (*UserAchievements, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	catalog, err := s.AchievementRepo.FindAll()
	if err != nil {
		return nil, err
	}

	unlocks, err := s.AchievementRepo.FindUnlocksByUser(userID)
	if err != nil {
		return nil, err
	}
	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	achievements := make([]model.UnlockedAchievement, len(catalog))
	for i, a := range catalog {
		achievements[i] = model.UnlockedAchievement{Achievement: a}
		if at, ok := unlockedAt[a.ID]; ok {
			achievements[i].Unlocked = true
			t := at
			achievements[i].UnlockedAt = &t
		}
	}

	leaderboard, err := s.GetLeaderboard(10)
	if err != nil {
		return nil, err
	}

	return &UserAchievements{
		TotalPoints:   user.TotalPoints,
		Level:         user.Level,
		NextLevelAt:   user.Level * pointsPerLevel,
		CurrentStreak: user.CurrentStreak,
		Achievements:  achievements,
		Leaderboard:   leaderboard,
	}, nil
}

// GetLeaderboard returns the top users by total points, cached in
// Redis for a minute. Works without Redis (tests, degraded mode).
func (s *GamificationService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	ctx := context.Background()

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil && len(entries) >= limit {
				return entries[:limit], nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByPoints(limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:   i + 1,
			Name:   user.Name,
			Points: user.TotalPoints,
			Level:  user.Level,
		}
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, leaderboardCacheKey, payload, leaderboardCacheTTL)
		}
	}

	return entries, nil
}

func (s *GamificationService) invalidateLeaderboard() {
	if s.Redis != nil {
		s.Redis.Del(context.Background(), leaderboardCacheKey)
	}
}
