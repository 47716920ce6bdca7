package models

import "gorm.io/gorm"

// CourseReview is a learner's rating and comment on a course. One review per
// (user, course) pair.
type CourseReview struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment" gorm:"type:text"`
	IsDeleted bool   `gorm:"default:false"`
}
