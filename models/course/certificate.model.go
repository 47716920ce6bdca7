package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued automatically on first full course completion
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	CourseID          uint      `json:"course_id" gorm:"index;not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique"`
	IssuedAt          time.Time `json:"issued_at"`
	IsDeleted         bool      `gorm:"default:false"`
}
