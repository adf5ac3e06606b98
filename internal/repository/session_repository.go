package repository

import (
	"errors"

	"github.com/Cleverson128/METODO-VAP/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.StudySession) error {
	return r.DB.Create(session).Error
}

// FindActive returns the user's open session, or nil when none is
// active. At most one open row can exist per user.
func (r *SessionRepository) FindActive(userID string) (*model.StudySession, error) {
	var session model.StudySession
	err := r.DB.Where("user_id = ? AND ended_at IS NULL", userID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Finalize closes an open session. The WHERE clause on ended_at makes
// the finalize step consume the active row at most once, so a session
// can never be counted twice even under a racing duplicate call.
func (r *SessionRepository) Finalize(session *model.StudySession) (bool, error) {
	result := r.DB.Model(&model.StudySession{}).
		Where("id = ? AND ended_at IS NULL", session.ID).
		Updates(map[string]interface{}{
			"ended_at": session.EndedAt,
			"duration": session.Duration,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *SessionRepository) FindFinalizedByUser(userID string) ([]model.StudySession, error) {
	var sessions []model.StudySession
	err := r.DB.Where("user_id = ? AND ended_at IS NOT NULL", userID).
		Order("id ASC").
		Find(&sessions).Error
	return sessions, err
}

// TotalTimeForModule sums finalized durations for one module. A pure
// aggregate over the log: invariant under row order.
func (r *SessionRepository) TotalTimeForModule(userID string, moduleID uint) (int, error) {
	var total int64
	err := r.DB.Model(&model.StudySession{}).
		Where("user_id = ? AND module_id = ? AND ended_at IS NOT NULL", userID, moduleID).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&total).Error
	return int(total), err
}

// HasSessionWithin reports whether any finalized session for a given
// module took at most maxMinutes (the speed-run achievement input).
func (r *SessionRepository) HasSessionWithin(userID string, moduleID uint, maxMinutes int) (bool, error) {
	var count int64
	err := r.DB.Model(&model.StudySession{}).
		Where("user_id = ? AND module_id = ? AND ended_at IS NOT NULL AND duration <= ?", userID, moduleID, maxMinutes).
		Count(&count).Error
	return count > 0, err
}
