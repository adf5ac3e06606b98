package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// User is the per-student aggregate: identity plus the derived
// gamification totals. TotalPoints, Level, TotalTimeStudied and
// CurrentStreak are owned by the gamification and study services;
// nothing else writes them.
type User struct {
	UUIDBase
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'student'" json:"role"`

	TotalPoints      int `gorm:"default:0" json:"totalPoints"`
	Level            int `gorm:"default:1" json:"level"`
	TotalTimeStudied int `gorm:"default:0" json:"totalTimeStudied"` // minutes
	CurrentStreak    int `gorm:"default:0" json:"currentStreak"`

	// LastStudyDate is a bare calendar date; the time component is
	// always midnight local.
	LastStudyDate *time.Time `json:"lastStudyDate"`

	// TempPassword marks accounts provisioned by the Hotmart webhook
	// that still hold their generated one-time password.
	TempPassword bool      `gorm:"default:false" json:"tempPassword"`
	Disabled     bool      `gorm:"default:false" json:"disabled"`
	LastLogin    time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// ModuleCompletion is the append-only record of a completed module.
// The autoincrement id preserves completion order.
type ModuleCompletion struct {
	BaseModel
	UserID   string `gorm:"size:36;index;uniqueIndex:idx_user_module_completion;not null"`
	ModuleID uint   `gorm:"uniqueIndex:idx_user_module_completion;not null"`
}

func (ModuleCompletion) TableName() string {
	return "module_completions"
}
