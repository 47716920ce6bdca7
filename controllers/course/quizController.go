package controllers

import (
	"log"

	"learnsphere/badge"
	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	courseModels "learnsphere/models/course"
	"learnsphere/progress"
	"learnsphere/quiz"
	"learnsphere/utils"

	"github.com/gofiber/fiber/v2"
)

// quizSessions holds in-flight quiz attempts. Attempt counters are
// session-scoped and reset when a new session is started.
var quizSessions = quiz.NewStore()

// QuestionWithOptions is a question with its options, correctness hidden
type QuestionWithOptions struct {
	courseModels.Question
	Options []courseModels.QuestionOption `json:"options"`
}

// GetQuiz returns a module quiz with questions and options. Correct-answer
// flags are stripped before the payload leaves the server.
func GetQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	quizID := c.Locals("quizID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var quizRecord courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", quizID, courseID, false, true).First(&quizRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []courseModels.Question
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Order("order_index asc").Find(&questions)

	result := make([]QuestionWithOptions, len(questions))
	for i, q := range questions {
		result[i] = QuestionWithOptions{Question: q}
		var options []courseModels.QuestionOption
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", q.ID, false).Order("order_index asc").Find(&options)
		// Remove IsCorrect from options for users (don't show answers)
		for j := range options {
			options[j].IsCorrect = false
		}
		result[i].Options = options
	}

	var completion courseModels.QuizCompletion
	alreadyCompleted := database.Database.Db.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&completion).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":              quizRecord,
		"questions":         result,
		"already_completed": alreadyCompleted,
	})
}

// StartQuizSession opens a new scoring session for the quiz. A quiz with no
// questions cannot be attempted.
func StartQuizSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	quizID := c.Locals("quizID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	var quizRecord courseModels.Quiz
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", quizID, courseID, false, true).First(&quizRecord).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []courseModels.Question
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quizID, false).Order("order_index asc").Find(&questions)

	engineQuestions := make([]quiz.Question, len(questions))
	for i, q := range questions {
		var options []courseModels.QuestionOption
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", q.ID, false).Order("order_index asc").Find(&options)

		engineOptions := make([]quiz.Option, len(options))
		for j, opt := range options {
			engineOptions[j] = quiz.Option{ID: opt.ID, IsCorrect: opt.IsCorrect}
		}
		engineQuestions[i] = quiz.Question{ID: q.ID, Options: engineOptions}
	}

	rewards := quizRecord.Rewards.Data()
	if rewards == (quiz.Rewards{}) {
		rewards = quiz.DefaultRewards
	}

	session, err := quiz.NewSession(userID, uint(quizID), uint(courseID), engineQuestions, quizRecord.PassingScore, rewards)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz has no questions!", nil)
	}
	attempt := session.Attempt
	quizSessions.Put(session)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz session started!", fiber.Map{
		"session_id":     session.ID,
		"question_count": len(engineQuestions),
		"passing_score":  quizRecord.PassingScore,
		"attempt_number": attempt,
	})
}

// AnswerQuizSession locks in the answer for the current question. Answering
// the last question scores the attempt; a first pass awards points through
// the badge ledger and recomputes course progress.
func AnswerQuizSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	session := quizSessions.Get(c.Params("session_id"))
	if session == nil || session.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz session not found!", nil)
	}

	reqData := new(struct {
		QuestionID uint `json:"question_id"`
		OptionID   uint `json:"option_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	result, err := session.Answer(reqData.QuestionID, reqData.OptionID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	if result == nil {
		state, questionIndex, questionCount := session.Progress()
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer recorded!", fiber.Map{
			"state":          state,
			"question_index": questionIndex,
			"question_count": questionCount,
		})
	}

	response := fiber.Map{
		"state":  quiz.StateResult,
		"result": result,
	}

	if result.Passed {
		ledgerResult, err := badge.ApplyQuizCompletion(database.Database.Db, userID, session.QuizID, session.CourseID, result.Points, result.AttemptNumber)
		if err != nil {
			log.Printf("Error applying quiz completion for user %d quiz %d: %v", userID, session.QuizID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz completion!", nil)
		}

		response["already_completed"] = ledgerResult.AlreadyCompleted
		response["points_awarded"] = ledgerResult.PointsAwarded
		response["user"] = fiber.Map{
			"total_points": ledgerResult.TotalPoints,
			"badge_level":  ledgerResult.BadgeLevel,
		}

		updated, newlyCompleted, err := progress.Recompute(database.Database.Db, userID, session.CourseID)
		if err != nil {
			log.Printf("Error recomputing progress for user %d course %d: %v", userID, session.CourseID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
		response["enrollment"] = updated

		if newlyCompleted {
			var user models.User
			var course courseModels.Course
			if database.Database.Db.First(&user, userID).Error == nil && database.Database.Db.First(&course, session.CourseID).Error == nil && user.Email != "" {
				go utils.SendCourseCompletionEmail(user.Email, user.Name, course.Title)
			}
		}

		// A passed session is done; only failed attempts may be retried
		quizSessions.Remove(session.ID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz attempt finished!", response)
}

// RetryQuizSession discards the attempt's answers and starts the next attempt
func RetryQuizSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	session := quizSessions.Get(c.Params("session_id"))
	if session == nil || session.UserID != userID {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz session not found!", nil)
	}

	attempt := session.Retry()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz session reset for retry!", fiber.Map{
		"session_id":     session.ID,
		"attempt_number": attempt,
		"state":          quiz.StateIntro,
	})
}
