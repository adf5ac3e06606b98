package repository

import (
	"errors"

	"github.com/Cleverson128/METODO-VAP/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExerciseRepository struct {
	DB *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{DB: db}
}

// Upsert replaces any existing result for the same user and module
// (last write wins).
func (r *ExerciseRepository) Upsert(result *model.ExerciseResult) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "total_questions", "percent_score", "completed_at", "updated_at",
		}),
	}).Create(result).Error
}

// FindByUserAndModule returns the current result, or nil when the
// user has not submitted the module's exercise yet.
func (r *ExerciseRepository) FindByUserAndModule(userID string, moduleID uint) (*model.ExerciseResult, error) {
	var result model.ExerciseResult
	err := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ExerciseRepository) FindByUser(userID string) ([]model.ExerciseResult, error) {
	var results []model.ExerciseResult
	err := r.DB.Where("user_id = ?", userID).Find(&results).Error
	return results, err
}

// CountPerfectScores counts modules whose current result is 100%.
func (r *ExerciseRepository) CountPerfectScores(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExerciseResult{}).
		Where("user_id = ? AND percent_score = 100", userID).
		Count(&count).Error
	return count, err
}
