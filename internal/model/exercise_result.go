package model

import "time"

// ExerciseResult stores the current exercise outcome per user and
// module. Resubmitting replaces the row (last write wins); earlier
// attempts are not retained.
type ExerciseResult struct {
	BaseModel
	UserID         string    `gorm:"size:36;uniqueIndex:idx_user_module_result;not null"`
	ModuleID       uint      `gorm:"uniqueIndex:idx_user_module_result;not null"`
	Score          int       `gorm:"not null"`
	TotalQuestions int       `gorm:"not null"`
	PercentScore   int       `gorm:"not null"`
	CompletedAt    time.Time `gorm:"not null"`
}

func (ExerciseResult) TableName() string {
	return "exercise_results"
}
