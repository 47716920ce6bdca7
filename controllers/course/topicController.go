package controllers

import (
	"log"

	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	courseModels "learnsphere/models/course"
	"learnsphere/progress"
	"learnsphere/utils"

	"github.com/gofiber/fiber/v2"
)

// MarkTopicComplete marks a topic as completed for the current user. The
// operation is idempotent: re-marking an already-completed topic is a benign
// no-op, not an error.
func MarkTopicComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated IDs
	courseID := c.Locals("courseID").(int)
	topicID := c.Locals("topicID").(int)

	// Check if course exists and is published
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Check if topic exists
	var topic courseModels.Topic
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", topicID, courseID, false, true).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	// Check if user is enrolled in the course
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Already completed: benign no-op, do not recompute
	var existing courseModels.TopicProgress
	if err := database.Database.Db.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic already completed!", fiber.Map{
			"already_completed": true,
			"enrollment":        enrollment,
		})
	}

	record := courseModels.TopicProgress{
		UserID:   userID,
		TopicID:  uint(topicID),
		CourseID: uint(courseID),
	}

	// Save to database with transaction; the unique (user_id, topic_id)
	// index rejects a concurrent duplicate insert.
	tx := database.Database.Db.Begin()
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark topic as completed!", nil)
	}
	tx.Commit()

	updated, newlyCompleted, err := progress.Recompute(database.Database.Db, userID, uint(courseID))
	if err != nil {
		log.Printf("Error recomputing progress for user %d course %d: %v", userID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if newlyCompleted && user.Email != "" {
		go utils.SendCourseCompletionEmail(user.Email, user.Name, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic marked as completed successfully!", fiber.Map{
		"already_completed": false,
		"completion":        record,
		"enrollment":        updated,
	})
}

// GetUserProgress gets the user's per-module and course-level progress
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	type ModuleProgress struct {
		ModuleID       uint    `json:"module_id"`
		ModuleName     string  `json:"module_name"`
		TotalItems     int     `json:"total_items"`
		CompletedItems int     `json:"completed_items"`
		Progress       float64 `json:"progress"`
	}

	items := make([]progress.ModuleItems, len(modules))
	moduleProgress := make([]ModuleProgress, len(modules))
	for i, mod := range modules {
		var totalTopics int64
		database.Database.Db.Model(&courseModels.Topic{}).
			Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).
			Count(&totalTopics)

		var completedTopics int64
		database.Database.Db.Model(&courseModels.TopicProgress{}).
			Joins("JOIN topics ON topic_progresses.topic_id = topics.id").
			Where("topic_progresses.user_id = ? AND topics.module_id = ? AND topics.is_deleted = ? AND topics.is_published = ?", userID, mod.ID, false, true).
			Count(&completedTopics)

		items[i] = progress.ModuleItems{
			TotalTopics:     int(totalTopics),
			CompletedTopics: int(completedTopics),
		}

		var moduleQuiz courseModels.Quiz
		if err := database.Database.Db.Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).First(&moduleQuiz).Error; err == nil {
			items[i].HasQuiz = true
			var completion courseModels.QuizCompletion
			if err := database.Database.Db.Where("user_id = ? AND quiz_id = ?", userID, moduleQuiz.ID).First(&completion).Error; err == nil {
				items[i].QuizCompleted = true
			}
		}

		completed, total := progress.ModuleCounts(items[i])
		pct := float64(0)
		if total > 0 {
			pct = float64(completed) / float64(total) * 100
		}
		moduleProgress[i] = ModuleProgress{
			ModuleID:       mod.ID,
			ModuleName:     mod.Title,
			TotalItems:     total,
			CompletedItems: completed,
			Progress:       pct,
		}
	}

	summary := progress.Course(items)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment":      enrollment,
		"summary":         summary,
		"module_progress": moduleProgress,
	})
}
