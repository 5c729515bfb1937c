package models

import "gorm.io/gorm"

// AnswerAttempt records one graded answer submission.
type AnswerAttempt struct {
	gorm.Model
	QuestionID uint   `json:"questionId"`
	UserID     uint   `json:"userId"`
	Answer     string `json:"answer"`
	Correct    bool   `json:"correct"`
}
