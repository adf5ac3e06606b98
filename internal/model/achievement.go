package model

import "time"

// ConditionType tags the variant of an achievement condition.
type ConditionType string

const (
	ModulesCompleted ConditionType = "modules_completed"
	StudyTime        ConditionType = "study_time"
	Streak           ConditionType = "streak"
	PerfectScore     ConditionType = "perfect_score"
	Speed            ConditionType = "speed"
)

// Achievement is a catalog entry. Per-user unlock state lives in
// UserAchievement; the catalog itself never changes at runtime.
type Achievement struct {
	ID            string        `gorm:"primaryKey;size:50" json:"id"`
	Title         string        `gorm:"size:100;not null" json:"title"`
	Description   string        `gorm:"size:255" json:"description"`
	Icon          string        `gorm:"size:50" json:"icon"`
	Points        int           `gorm:"default:0" json:"points"`
	ConditionType ConditionType `gorm:"size:30;not null" json:"conditionType"`
	ConditionGoal int           `gorm:"not null" json:"conditionValue"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement records a one-time unlock. Rows are only ever
// inserted, never updated or deleted.
type UserAchievement struct {
	BaseModel
	UserID        string    `gorm:"size:36;uniqueIndex:idx_user_achievement;not null"`
	AchievementID string    `gorm:"size:50;uniqueIndex:idx_user_achievement;not null"`
	UnlockedAt    time.Time `gorm:"not null"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

// UnlockedAchievement is an achievement joined with its unlock state
// for one user.
type UnlockedAchievement struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}
