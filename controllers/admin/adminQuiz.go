package controllers

import (
	"learnsphere/database"
	"learnsphere/middleware"
	courseModels "learnsphere/models/course"
	"learnsphere/quiz"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// QuizRequest is the authoring payload for a quiz with nested questions
type QuizRequest struct {
	Title        string        `json:"title"`
	PassingScore int           `json:"passing_score"`
	Rewards      *quiz.Rewards `json:"rewards"`
	Questions    []struct {
		Text    string `json:"text"`
		Type    string `json:"type"`
		Points  int    `json:"points"`
		Options []struct {
			Text      string `json:"text"`
			IsCorrect bool   `json:"is_correct"`
		} `json:"options"`
	} `json:"questions"`
}

// AdminCreateQuiz creates a module quiz with nested questions and options.
// A module holds at most one quiz.
func AdminCreateQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var existingQuiz courseModels.Quiz
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&existingQuiz).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Module already has a quiz!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*QuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	passingScore := reqData.PassingScore
	if passingScore == 0 {
		passingScore = 70
	}

	rewards := quiz.DefaultRewards
	if reqData.Rewards != nil {
		rewards = *reqData.Rewards
	}

	newQuiz := courseModels.Quiz{
		CourseID:     uint(courseID),
		ModuleID:     uint(moduleID),
		Title:        reqData.Title,
		PassingScore: passingScore,
		Rewards:      datatypes.NewJSONType(rewards),
	}

	tx := database.Database.Db.Begin()
	if err := tx.Create(&newQuiz).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	for qi, q := range reqData.Questions {
		points := q.Points
		if points == 0 {
			points = 1
		}
		question := courseModels.Question{
			QuizID:     newQuiz.ID,
			Text:       q.Text,
			Type:       q.Type,
			Points:     points,
			OrderIndex: qi + 1,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz questions!", nil)
		}

		for oi, opt := range q.Options {
			option := courseModels.QuestionOption{
				QuestionID: question.ID,
				Text:       opt.Text,
				IsCorrect:  opt.IsCorrect,
				OrderIndex: oi + 1,
			}
			if err := tx.Create(&option).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question options!", nil)
			}
		}
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", newQuiz)
}

// AdminUpdateQuiz updates quiz settings (title, passing score, rewards,
// publish state); questions are managed by recreating the quiz
func AdminUpdateQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	quizID := c.Locals("quizID").(int)

	var quizRecord courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", quizID, courseID, false).First(&quizRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	reqData := new(struct {
		Title        string        `json:"title"`
		PassingScore int           `json:"passing_score"`
		Rewards      *quiz.Rewards `json:"rewards"`
		IsPublished  *bool         `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != "" {
		quizRecord.Title = reqData.Title
	}
	if reqData.PassingScore > 0 && reqData.PassingScore <= 100 {
		quizRecord.PassingScore = reqData.PassingScore
	}
	if reqData.Rewards != nil {
		quizRecord.Rewards = datatypes.NewJSONType(*reqData.Rewards)
	}
	if reqData.IsPublished != nil {
		quizRecord.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Save(&quizRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quizRecord)
}

// AdminDeleteQuiz soft deletes a quiz and its questions
func AdminDeleteQuiz(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	quizID := c.Locals("quizID").(int)

	var quizRecord courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", quizID, courseID, false).First(&quizRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	tx := database.Database.Db.Begin()

	quizRecord.IsDeleted = true
	quizRecord.IsPublished = false
	if err := tx.Save(&quizRecord).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	if err := tx.Model(&courseModels.Question{}).Where("quiz_id = ?", quizRecord.ID).Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz questions!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}
