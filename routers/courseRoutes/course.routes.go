package courseRoutes

import (
	controllers "learnsphere/controllers/course"
	"learnsphere/middleware"
	validators "learnsphere/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Course listing and details (published courses)
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Enrollment
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Topic completion
	userGroup.Post("/:course_id/topic/:topic_id/complete", middleware.JWTMiddleware, validators.MarkTopicComplete(), controllers.MarkTopicComplete)

	// Progress tracking
	userGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.GetCourseProgress(), controllers.GetUserProgress)

	// Quiz taking
	userGroup.Get("/:course_id/quiz/:quiz_id", middleware.JWTMiddleware, validators.QuizParams(), controllers.GetQuiz)
	userGroup.Post("/:course_id/quiz/:quiz_id/session/start", middleware.JWTMiddleware, validators.QuizParams(), controllers.StartQuizSession)

	quizGroup := app.Group("/quiz")
	quizGroup.Post("/session/:session_id/answer", middleware.JWTMiddleware, controllers.AnswerQuizSession)
	quizGroup.Post("/session/:session_id/retry", middleware.JWTMiddleware, controllers.RetryQuizSession)

	// Reviews
	userGroup.Get("/:id/reviews", middleware.JWTMiddleware, validators.CourseReviews(), controllers.GetCourseReviews)
	userGroup.Post("/:id/review", middleware.JWTMiddleware, validators.CourseReviews(), controllers.SubmitReview)

	// User enrollments and certificates
	userEnrollGroup := app.Group("/user")
	userEnrollGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)
	userEnrollGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
