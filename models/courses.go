package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Language    string    `json:"language"` // display/icon tag, searchable
	Levels      []Level   `json:"levels,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
	Rating      float64   `gorm:"-" json:"rating"` // average comment rating, recomputed on read
}

type Level struct {
	gorm.Model
	CourseID    uint              `json:"courseId"`
	Title       string            `gorm:"not null" json:"title"`
	Slides      []Slide           `json:"slides,omitempty"`
	Completions []LevelCompletion `json:"completedByUsers,omitempty"`
}

// LevelCompletion is one entry of a level's completion set. The composite
// unique index keeps a user from appearing twice for the same level.
type LevelCompletion struct {
	gorm.Model
	LevelID     uint      `gorm:"uniqueIndex:idx_level_completion" json:"levelId"`
	UserID      uint      `gorm:"uniqueIndex:idx_level_completion" json:"userId"`
	CompletedAt time.Time `json:"completedAt"`
}

type Slide struct {
	gorm.Model
	LevelID   uint                        `json:"levelId"`
	Content   datatypes.JSONSlice[string] `json:"content"`
	Code      datatypes.JSONSlice[string] `json:"code"` // paired with Content by index
	Questions []Question                  `json:"questions,omitempty"`
}

const (
	QuestionSingleChoice = "single-choice"
	QuestionMultiSelect  = "multi-select"
	QuestionOrdering     = "ordering"
	QuestionDragAndDrop  = "drag-and-drop"
)

type Question struct {
	gorm.Model
	SlideID        uint                        `json:"slideId"`
	QuestionText   string                      `gorm:"not null" json:"questionText"`
	Type           string                      `json:"type"` // single-choice, multi-select, ordering, drag-and-drop
	Options        datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswers datatypes.JSONSlice[string] `json:"correctAnswers"`
	Code           string                      `json:"code,omitempty"`
}

// IsCorrect reports whether answer is one of the question's accepted answers.
// Only single-choice grading is defined; other types store their answers but
// are not graded here.
func (q *Question) IsCorrect(answer string) bool {
	for _, a := range q.CorrectAnswers {
		if a == answer {
			return true
		}
	}
	return false
}
