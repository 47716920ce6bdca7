package course

import "gorm.io/gorm"

// Topic is an individual content unit (video/document/image) within a module
type Topic struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"content_type" gorm:"default:'VIDEO'"` // VIDEO, DOCUMENT, IMAGE
	ContentURL  string `json:"content_url"`
	Duration    int    `json:"duration" gorm:"default:0"`    // duration in minutes
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Order within module
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// TopicProgress marks a topic as completed by a user. Existence of the row
// means completed; there is no partial state. The unique index backs the
// insert-or-skip pattern against rapid duplicate submissions.
type TopicProgress struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_user_topic;not null"`
	TopicID  uint `json:"topic_id" gorm:"uniqueIndex:idx_user_topic;not null"`
	CourseID uint `json:"course_id" gorm:"index;not null"`
}
