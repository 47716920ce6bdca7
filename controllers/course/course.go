package controllers

import (
	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	courseModels "learnsphere/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses for learners
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `query:"page" json:"page"`
		Limit *int `query:"limit" json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ? AND status = ?", false, true, "ACTIVE")

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// TopicWithCompletion is a topic plus the caller's completion flag
type TopicWithCompletion struct {
	courseModels.Topic
	IsCompleted bool `json:"is_completed"`
}

// ModuleDetail is a module with its topics and optional quiz summary
type ModuleDetail struct {
	courseModels.Module
	Topics        []TopicWithCompletion `json:"topics"`
	Quiz          *courseModels.Quiz    `json:"quiz,omitempty"`
	QuizCompleted bool                  `json:"quiz_completed"`
}

// GetCourseDetails gets course details with modules, topics and per-user
// completion flags
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var modules []courseModels.Module
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&modules)

	result := make([]ModuleDetail, len(modules))
	for i, mod := range modules {
		result[i] = ModuleDetail{Module: mod}

		var topics []courseModels.Topic
		database.Database.Db.Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).Order("order_index asc").Find(&topics)

		withCompletion := make([]TopicWithCompletion, len(topics))
		for j, topic := range topics {
			withCompletion[j] = TopicWithCompletion{Topic: topic}
			var tp courseModels.TopicProgress
			if err := database.Database.Db.Where("user_id = ? AND topic_id = ?", userID, topic.ID).First(&tp).Error; err == nil {
				withCompletion[j].IsCompleted = true
			}
		}
		result[i].Topics = withCompletion

		var moduleQuiz courseModels.Quiz
		if err := database.Database.Db.Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).First(&moduleQuiz).Error; err == nil {
			result[i].Quiz = &moduleQuiz
			var completion courseModels.QuizCompletion
			if err := database.Database.Db.Where("user_id = ? AND quiz_id = ?", userID, moduleQuiz.ID).First(&completion).Error; err == nil {
				result[i].QuizCompleted = true
			}
		}
	}

	// Check if user is enrolled
	var enrollment courseModels.Enrollment
	isEnrolled := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"modules":     result,
		"is_enrolled": isEnrolled,
		"enrollment":  enrollment,
	})
}
