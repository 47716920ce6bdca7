package courseRoutes

import (
	adminControllers "learnsphere/controllers/admin"
	"learnsphere/middleware"
	adminValidators "learnsphere/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up authoring and reporting routes. Course
// authoring is open to instructors as well as admins; the platform-wide
// stats endpoint is admin only.
func SetupAdminCourseRoutes(app *fiber.App) {
	staff := middleware.RequireRole("ADMIN", "INSTRUCTOR")

	adminGroup := app.Group("/admin", middleware.JWTMiddleware)

	// Course authoring
	adminGroup.Get("/course/list", staff, adminControllers.AdminGetAllCourses)
	adminGroup.Post("/course", staff, adminValidators.CreateCourse(), adminControllers.AdminCreateCourse)
	adminGroup.Put("/course/:id", staff, adminValidators.CourseID(), adminValidators.UpdateCourse(), adminControllers.AdminUpdateCourse)
	adminGroup.Patch("/course/:id/publish", staff, adminValidators.CourseID(), adminControllers.AdminPublishCourse)
	adminGroup.Delete("/course/:id", staff, adminValidators.CourseID(), adminControllers.AdminDeleteCourse)

	// Module authoring
	adminGroup.Post("/course/:id/module", staff, adminValidators.CourseID(), adminValidators.CreateModule(), adminControllers.AdminCreateModule)
	adminGroup.Put("/course/:course_id/module/:module_id", staff, adminValidators.CourseModuleParams(), adminValidators.UpdateModule(), adminControllers.AdminUpdateModule)
	adminGroup.Delete("/course/:course_id/module/:module_id", staff, adminValidators.CourseModuleParams(), adminControllers.AdminDeleteModule)

	// Topic authoring
	adminGroup.Post("/course/:course_id/module/:module_id/topic", staff, adminValidators.CourseModuleParams(), adminValidators.CreateTopic(), adminControllers.AdminCreateTopic)
	adminGroup.Put("/course/:course_id/topic/:topic_id", staff, adminValidators.CourseTopicParams(), adminValidators.UpdateTopic(), adminControllers.AdminUpdateTopic)
	adminGroup.Delete("/course/:course_id/topic/:topic_id", staff, adminValidators.CourseTopicParams(), adminControllers.AdminDeleteTopic)

	// Quiz authoring
	adminGroup.Post("/course/:course_id/module/:module_id/quiz", staff, adminValidators.CourseModuleParams(), adminValidators.CreateQuiz(), adminControllers.AdminCreateQuiz)
	adminGroup.Put("/course/:course_id/quiz/:quiz_id", staff, adminValidators.CourseQuizParams(), adminControllers.AdminUpdateQuiz)
	adminGroup.Delete("/course/:course_id/quiz/:quiz_id", staff, adminValidators.CourseQuizParams(), adminControllers.AdminDeleteQuiz)

	// Reporting
	adminGroup.Get("/course/:id/enrollments", staff, adminValidators.CourseID(), adminControllers.AdminGetCourseEnrollments)
	adminGroup.Get("/stats", middleware.RequireRole("ADMIN"), adminControllers.AdminGetStats)
}
