package progress

import (
	"time"

	courseModels "learnsphere/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recompute rebuilds the enrollment's progress for (userID, courseID) from
// the completion tables and persists it. On the first transition to full
// completion it stamps CompletedAt and issues a certificate. Returns the
// updated enrollment and whether this call completed the course.
func Recompute(db *gorm.DB, userID, courseID uint) (*courseModels.Enrollment, bool, error) {
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return nil, false, err
	}

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules).Error; err != nil {
		return nil, false, err
	}

	items := make([]ModuleItems, 0, len(modules))
	for _, mod := range modules {
		var m ModuleItems

		var totalTopics int64
		db.Model(&courseModels.Topic{}).
			Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).
			Count(&totalTopics)
		m.TotalTopics = int(totalTopics)

		var completedTopics int64
		db.Model(&courseModels.TopicProgress{}).
			Joins("JOIN topics ON topic_progresses.topic_id = topics.id").
			Where("topic_progresses.user_id = ? AND topics.module_id = ? AND topics.is_deleted = ? AND topics.is_published = ?", userID, mod.ID, false, true).
			Count(&completedTopics)
		m.CompletedTopics = int(completedTopics)

		var moduleQuiz courseModels.Quiz
		if err := db.Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).First(&moduleQuiz).Error; err == nil {
			m.HasQuiz = true
			var completion courseModels.QuizCompletion
			if err := db.Where("user_id = ? AND quiz_id = ?", userID, moduleQuiz.ID).First(&completion).Error; err == nil {
				m.QuizCompleted = true
			}
		}

		items = append(items, m)
	}

	summary := Course(items)

	enrollment.Progress = summary.Percentage
	enrollment.CompletedItems = summary.CompletedItems
	enrollment.TotalItems = summary.TotalItems
	enrollment.LastAccessed = time.Now()

	newlyCompleted := false
	if summary.IsCompleted {
		if enrollment.Status != "COMPLETED" {
			newlyCompleted = true
			now := time.Now()
			enrollment.Status = "COMPLETED"
			if enrollment.CompletedAt == nil {
				enrollment.CompletedAt = &now
			}
		}
	} else if summary.CompletedItems > 0 {
		enrollment.Status = "IN_PROGRESS"
	}

	if err := db.Save(&enrollment).Error; err != nil {
		return nil, false, err
	}

	if newlyCompleted {
		if err := issueCertificate(db, userID, courseID); err != nil {
			return nil, false, err
		}
	}

	return &enrollment, newlyCompleted, nil
}

// issueCertificate creates the completion certificate if none exists yet
func issueCertificate(db *gorm.DB, userID, courseID uint) error {
	var existing courseModels.Certificate
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existing).Error; err == nil {
		return nil
	}

	cert := courseModels.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: uuid.NewString(),
		IssuedAt:          time.Now(),
	}
	return db.Create(&cert).Error
}
