package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with aggregate progress.
// Progress is always recomputed wholesale from completions, never patched
// incrementally, so a racing recompute self-corrects on the next event.
type Enrollment struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID       uint       `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Status         string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress       float64    `json:"progress" gorm:"default:0"`        // Completion percentage (0-100)
	CompletedItems int        `json:"completed_items" gorm:"default:0"`
	TotalItems     int        `json:"total_items" gorm:"default:0"`
	LastAccessed   time.Time  `json:"last_accessed" gorm:"default:NULL"`
	CompletedAt    *time.Time `json:"completed_at"` // set once, on first full completion
	IsDeleted      bool       `gorm:"default:false"`
}
