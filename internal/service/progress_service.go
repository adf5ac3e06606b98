package service

import (
	"math"
	"time"

	"github.com/Cleverson128/METODO-VAP/internal/model"
	"github.com/Cleverson128/METODO-VAP/internal/repository"
	"github.com/Cleverson128/METODO-VAP/internal/util"
	"github.com/Cleverson128/METODO-VAP/pkg/logger"

	"go.uber.org/zap"
)

// ProgressService is the progress store: the per-user session log,
// exercise results and the catalog projected with per-user state.
type ProgressService struct {
	ModuleRepo     *repository.ModuleRepository
	CompletionRepo *repository.CompletionRepository
	SessionRepo    *repository.SessionRepository
	ExerciseRepo   *repository.ExerciseRepository
	UserRepo       *repository.UserRepository
	Gamification   *GamificationService
}

func NewProgressService(
	moduleRepo *repository.ModuleRepository,
	completionRepo *repository.CompletionRepository,
	sessionRepo *repository.SessionRepository,
	exerciseRepo *repository.ExerciseRepository,
	userRepo *repository.UserRepository,
	gamification *GamificationService,
) *ProgressService {
	return &ProgressService{
		ModuleRepo:     moduleRepo,
		CompletionRepo: completionRepo,
		SessionRepo:    sessionRepo,
		ExerciseRepo:   exerciseRepo,
		UserRepo:       userRepo,
		Gamification:   gamification,
	}
}

// RecordExerciseResult stores a submission, replacing any earlier
// result for the same module (last write wins). percentScore rounds
// to the nearest integer.
func (s *ProgressService) RecordExerciseResult(userID string, moduleID uint, score, totalQuestions int) (*model.ExerciseResult, error) {
	if totalQuestions <= 0 || score < 0 || score > totalQuestions {
		return nil, util.ErrInvalidScore
	}

	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		return nil, util.ErrModuleNotFound
	}

	result := &model.ExerciseResult{
		UserID:         userID,
		ModuleID:       moduleID,
		Score:          score,
		TotalQuestions: totalQuestions,
		PercentScore:   int(math.Round(float64(score) / float64(totalQuestions) * 100)),
		CompletedAt:    time.Now(),
	}

	if err := s.ExerciseRepo.Upsert(result); err != nil {
		return nil, err
	}

	// A new result can satisfy the perfect-score achievement.
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if _, err := s.Gamification.EvaluateAchievements(user); err != nil {
		logger.Log.Warn("achievement evaluation failed after exercise",
			zap.String("user", userID), zap.Uint("module", moduleID), zap.Error(err))
	}
	if err := s.UserRepo.Update(user); err != nil {
		logger.Log.Error("saving user profile after exercise",
			zap.String("user", userID), zap.Error(err))
	}

	return result, nil
}

// ExerciseScoreForModule returns the current percent score, or nil
// when no result exists.
func (s *ProgressService) ExerciseScoreForModule(userID string, moduleID uint) (*int, error) {
	result, err := s.ExerciseRepo.FindByUserAndModule(userID, moduleID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	score := result.PercentScore
	return &score, nil
}

// ModulesForUser projects the catalog with the user's lock and
// completion state, study time and exercise score per module. A
// module is unlocked once every preceding module is completed.
func (s *ProgressService) ModulesForUser(userID string) ([]model.ModuleView, error) {
	modules, err := s.ModuleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	completions, err := s.CompletionRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	completed := make(map[uint]bool, len(completions))
	for _, c := range completions {
		completed[c.ModuleID] = true
	}

	views := make([]model.ModuleView, len(modules))
	allPrevDone := true
	for i, m := range modules {
		view := model.ModuleView{
			CourseModule: m,
			Completed:    completed[m.ID],
			Locked:       !allPrevDone,
		}

		view.StudyMinutes, err = s.SessionRepo.TotalTimeForModule(userID, m.ID)
		if err != nil {
			return nil, err
		}

		view.ExerciseScore, err = s.ExerciseScoreForModule(userID, m.ID)
		if err != nil {
			return nil, err
		}

		views[i] = view
		allPrevDone = allPrevDone && completed[m.ID]
	}

	return views, nil
}

// Summary is the dashboard projection.
type Summary struct {
	TotalModules     int    `json:"totalModules"`
	CompletedModules []uint `json:"completedModules"`
	TotalPoints      int    `json:"totalPoints"`
	Level            int    `json:"level"`
	TotalTimeStudied int    `json:"totalTimeStudied"`
	CurrentStreak    int    `json:"currentStreak"`
	NextModuleID     *uint  `json:"nextModuleId,omitempty"`
}

// SummaryForUser computes the dashboard aggregates: completion order,
// totals and the next unlocked-but-uncompleted module.
func (s *ProgressService) SummaryForUser(userID string) (*Summary, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	modules, err := s.ModuleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	completions, err := s.CompletionRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	completedIDs := make([]uint, len(completions))
	completed := make(map[uint]bool, len(completions))
	for i, c := range completions {
		completedIDs[i] = c.ModuleID
		completed[c.ModuleID] = true
	}

	summary := &Summary{
		TotalModules:     len(modules),
		CompletedModules: completedIDs,
		TotalPoints:      user.TotalPoints,
		Level:            user.Level,
		TotalTimeStudied: user.TotalTimeStudied,
		CurrentStreak:    user.CurrentStreak,
	}

	for _, m := range modules {
		if !completed[m.ID] {
			id := m.ID
			summary.NextModuleID = &id
			break
		}
	}

	return summary, nil
}
