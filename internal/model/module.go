package model

// CourseModule is one unit of the Método VAP course catalog. The
// catalog is static; the id doubles as the ordering key, and module n
// unlocks for a user once module n-1 is completed.
type CourseModule struct {
	BaseModel
	Title            string `gorm:"size:255;not null" json:"title"`
	Description      string `gorm:"type:text" json:"description"`
	VideoURL         string `gorm:"size:255" json:"videoUrl"`
	ExerciseFile     string `gorm:"size:255" json:"exerciseFile"`
	Points           int    `gorm:"default:0" json:"points"`
	EstimatedMinutes int    `gorm:"default:0" json:"estimatedMinutes"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

// ModuleView is a catalog entry projected for one user: the static
// module plus its per-user lock/completion state and aggregates.
type ModuleView struct {
	CourseModule
	Locked        bool `json:"locked"`
	Completed     bool `json:"completed"`
	StudyMinutes  int  `json:"studyMinutes"`
	ExerciseScore *int `json:"exerciseScore"` // nil until an exercise is submitted
}
