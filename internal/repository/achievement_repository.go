package repository

import (
	"github.com/Cleverson128/METODO-VAP/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindAll() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Order("points ASC").Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) FindUnlocksByUser(userID string) ([]model.UserAchievement, error) {
	var unlocks []model.UserAchievement
	err := r.DB.Where("user_id = ?", userID).Find(&unlocks).Error
	return unlocks, err
}

// Unlock inserts the one-time unlock row. The unique index on
// (user_id, achievement_id) makes the transition irreversible and
// unrepeatable at the storage level.
func (r *AchievementRepository) Unlock(unlock *model.UserAchievement) error {
	return r.DB.Create(unlock).Error
}
