package model

import "time"

// StudySession is one timed interval of study against a module. A row
// with a NULL EndedAt is the user's single active session; finalized
// rows are immutable and form the append-only session log.
type StudySession struct {
	BaseModel
	UserID    string     `gorm:"size:36;index;not null"`
	ModuleID  uint       `gorm:"index;not null"`
	StartedAt time.Time  `gorm:"not null"`
	EndedAt   *time.Time `gorm:"index"`
	Duration  int        `gorm:"default:0"` // whole minutes, valid once EndedAt is set
}

func (StudySession) TableName() string {
	return "study_sessions"
}

// Active reports whether the session has not been finalized yet.
func (s *StudySession) Active() bool {
	return s.EndedAt == nil
}
