package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestQuestionIsCorrect(t *testing.T) {
	question := Question{
		QuestionText:   "Pick B",
		Type:           QuestionSingleChoice,
		Options:        datatypes.NewJSONSlice([]string{"A", "B", "C"}),
		CorrectAnswers: datatypes.NewJSONSlice([]string{"B"}),
	}

	assert.True(t, question.IsCorrect("B"))
	assert.False(t, question.IsCorrect("A"))
	assert.False(t, question.IsCorrect(""))
}

func TestQuestionIsCorrectMultipleAccepted(t *testing.T) {
	question := Question{
		QuestionText:   "Any even number",
		CorrectAnswers: datatypes.NewJSONSlice([]string{"2", "4"}),
	}

	assert.True(t, question.IsCorrect("2"))
	assert.True(t, question.IsCorrect("4"))
	assert.False(t, question.IsCorrect("3"))
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 4.0, AverageRating([]Comment{{Rating: 3}, {Rating: 5}}))
	assert.Equal(t, 5.0, AverageRating([]Comment{{Rating: 5}}))
}
