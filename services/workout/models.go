package workout

import (
	"time"
)

type WorkoutType string

const (
	TypeGym        WorkoutType = "gym"
	TypeVolleyball WorkoutType = "volleyball"
)

type Workout struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"not null;index"`
	Type        WorkoutType `json:"type" gorm:"size:32;not null"`
	Duration    int         `json:"duration" gorm:"not null"`
	Repetitions int         `json:"repetitions" gorm:"not null"`
	PlannedDate *time.Time  `json:"planned_date,omitempty"`
	Notes       string      `json:"notes,omitempty" gorm:"size:1000"`
	Exercises   []string    `json:"exercises" gorm:"serializer:json"`
}

func (Workout) TableName() string {
	return "workouts"
}

// Filter narrows List results. Nil fields are ignored.
type Filter struct {
	Type        *WorkoutType
	DateFrom    *time.Time
	DateTo      *time.Time
	MinDuration *int
	MaxDuration *int
	Page        int
	Size        int
}
