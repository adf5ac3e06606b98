package service

import (
	"time"

	"github.com/Cleverson128/METODO-VAP/internal/model"
	"github.com/Cleverson128/METODO-VAP/internal/repository"
	"github.com/Cleverson128/METODO-VAP/internal/util"
	"github.com/Cleverson128/METODO-VAP/pkg/logger"
	"github.com/Cleverson128/METODO-VAP/pkg/monitoring"

	"go.uber.org/zap"
)

// StudyService is the session tracker. A user holds at most one
// active session (a study_sessions row with NULL ended_at); it must
// be released by EndSession before a new one can be acquired. Every
// exit path of the study surface (pause, navigation, logout, next
// login after a client crash) funnels into EndSession, which is a
// safe no-op when nothing is active.
type StudyService struct {
	SessionRepo  *repository.SessionRepository
	UserRepo     *repository.UserRepository
	ModuleRepo   *repository.ModuleRepository
	Gamification *GamificationService
}

func NewStudyService(
	sessionRepo *repository.SessionRepository,
	userRepo *repository.UserRepository,
	moduleRepo *repository.ModuleRepository,
	gamification *GamificationService,
) *StudyService {
	return &StudyService{
		SessionRepo:  sessionRepo,
		UserRepo:     userRepo,
		ModuleRepo:   moduleRepo,
		Gamification: gamification,
	}
}

// StartSession opens a study session against a module. Fails with
// ErrSessionActive while another session is open, and with
// ErrModuleLocked for modules the user has not reached yet.
func (s *StudyService) StartSession(userID string, moduleID uint) (*model.StudySession, error) {
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		return nil, util.ErrModuleNotFound
	}

	unlocked, err := s.Gamification.ModuleUnlocked(userID, moduleID)
	if err != nil {
		return nil, err
	}
	if !unlocked {
		return nil, util.ErrModuleLocked
	}

	active, err := s.SessionRepo.FindActive(userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, util.ErrSessionActive
	}

	session := &model.StudySession{
		UserID:    userID,
		ModuleID:  moduleID,
		StartedAt: time.Now(),
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}

	monitoring.SessionsStarted.Inc()
	return session, nil
}

// EndSession finalizes the active session: duration is the elapsed
// time in whole minutes, clamped at zero against clock skew. The
// finalized session is appended to the log and its duration added to
// the user's total exactly once. Returns (nil, nil) when no session
// is active.
func (s *StudyService) EndSession(userID string) (*model.StudySession, error) {
	active, err := s.SessionRepo.FindActive(userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, nil
	}

	now := time.Now()
	minutes := int(now.Sub(active.StartedAt) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}

	active.EndedAt = &now
	active.Duration = minutes

	consumed, err := s.SessionRepo.Finalize(active)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// Another caller finalized it first; the aggregate update
		// already happened there.
		return nil, nil
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	user.TotalTimeStudied += minutes
	touchStreak(user, now)

	if _, err := s.Gamification.EvaluateAchievements(user); err != nil {
		logger.Log.Warn("achievement evaluation failed after session",
			zap.String("user", userID), zap.Error(err))
	}

	if err := s.UserRepo.Update(user); err != nil {
		// Time is already granted in memory; keep the session log as
		// the source of truth and surface nothing fatal.
		logger.Log.Error("saving user profile after session",
			zap.String("user", userID), zap.Error(err))
	}

	return active, nil
}

// ActiveSession returns the user's open session, if any.
func (s *StudyService) ActiveSession(userID string) (*model.StudySession, error) {
	return s.SessionRepo.FindActive(userID)
}

// TotalTimeForModule sums finalized session minutes for one module.
func (s *StudyService) TotalTimeForModule(userID string, moduleID uint) (int, error) {
	return s.SessionRepo.TotalTimeForModule(userID, moduleID)
}

// touchStreak advances the consecutive-day study counter: same-day
// activity keeps it, next-day activity increments it, a gap resets it
// to one.
func touchStreak(user *model.User, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case user.LastStudyDate == nil:
		user.CurrentStreak = 1
	case user.LastStudyDate.Equal(today):
		return
	case user.LastStudyDate.Equal(today.AddDate(0, 0, -1)):
		user.CurrentStreak++
	default:
		user.CurrentStreak = 1
	}

	user.LastStudyDate = &today
}
