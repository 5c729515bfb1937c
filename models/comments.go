package models

import "gorm.io/gorm"

type Comment struct {
	gorm.Model
	CourseID uint   `json:"courseId"`
	UserID   uint   `json:"userId"`
	Name     string `json:"name"` // display-name snapshot at post time
	Text     string `json:"comment"`
	Rating   int    `gorm:"check:rating>=0 AND rating<=5" json:"rating"`
	Edited   bool   `gorm:"default:false" json:"edited"`
}

// AverageRating returns the mean rating of the given comments, 0 when there
// are none. Course ratings are derived from this on read, never stored.
func AverageRating(comments []Comment) float64 {
	if len(comments) == 0 {
		return 0
	}
	sum := 0
	for _, comment := range comments {
		sum += comment.Rating
	}
	return float64(sum) / float64(len(comments))
}
