package badge

import (
	"errors"

	"learnsphere/models"
	courseModels "learnsphere/models/course"

	"gorm.io/gorm"
)

// CompletionResult reports the outcome of applying a quiz completion
type CompletionResult struct {
	AlreadyCompleted bool   `json:"already_completed"`
	PointsAwarded    int    `json:"points_awarded"`
	TotalPoints      uint   `json:"total_points"`
	BadgeLevel       string `json:"badge_level"`
}

// ApplyQuizCompletion records a first passing completion and awards its
// points in a single transaction: insert the completion row, add the points,
// and rewrite the badge level from the new total. A completion that already
// exists is a benign no-op and awards nothing; the unique (user_id, quiz_id)
// index catches concurrent duplicates the pre-check misses.
func ApplyQuizCompletion(db *gorm.DB, userID, quizID, courseID uint, points, attemptNumber int) (*CompletionResult, error) {
	result := &CompletionResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return err
		}

		var existing courseModels.QuizCompletion
		err := tx.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&existing).Error
		if err == nil {
			result.AlreadyCompleted = true
			result.TotalPoints = user.TotalPoints
			result.BadgeLevel = user.BadgeLevel
			return nil
		}
		// Only a missing row may proceed to the insert path
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		completion := courseModels.QuizCompletion{
			UserID:        userID,
			QuizID:        quizID,
			CourseID:      courseID,
			PointsEarned:  points,
			AttemptNumber: attemptNumber,
		}
		if err := tx.Create(&completion).Error; err != nil {
			return err
		}

		user.TotalPoints += uint(points)
		user.BadgeLevel = ForPoints(user.TotalPoints).Name
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		result.PointsAwarded = points
		result.TotalPoints = user.TotalPoints
		result.BadgeLevel = user.BadgeLevel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
