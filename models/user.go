package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username         string     `gorm:"unique;not null" json:"username"`
	Email            string     `gorm:"unique;not null" json:"email"`
	PasswordHash     string     `gorm:"not null" json:"-"`
	IsAdmin          bool       `gorm:"default:false" json:"isAdmin"`
	ResetToken       string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CompletedCourses []Course   `gorm:"many2many:user_completed_courses" json:"completedCourses,omitempty"`
}
