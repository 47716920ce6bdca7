package controllers

import (
	"time"

	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	courseModels "learnsphere/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminGetCourseEnrollments gets all enrolled students for a course
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Enrollment{}).Where("course_id = ? AND is_deleted = ?", courseID, false)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithUser struct {
		courseModels.Enrollment
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
	}

	// Fetch user details for each enrollment
	result := make([]EnrollmentWithUser, len(enrollments))
	for i, e := range enrollments {
		var enrolledUser models.User
		database.Database.Db.Where("id = ?", e.UserID).First(&enrolledUser)
		result[i] = EnrollmentWithUser{
			Enrollment: e,
			UserName:   enrolledUser.Name,
			UserEmail:  enrolledUser.Email,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetStats returns platform-wide counts plus enrollment and completion
// activity for the current week and month
func AdminGetStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalCourses, totalEnrollments, totalCompletions int64
	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND status = ?", false, "COMPLETED").Count(&totalCompletions)

	weekStart := now.BeginningOfWeek()
	monthStart := now.BeginningOfMonth()

	countEnrollmentsSince := func(since time.Time) int64 {
		var n int64
		db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND created_at >= ?", false, since).Count(&n)
		return n
	}
	countCompletionsSince := func(since time.Time) int64 {
		var n int64
		db.Model(&courseModels.Enrollment{}).Where("is_deleted = ? AND status = ? AND completed_at >= ?", false, "COMPLETED", since).Count(&n)
		return n
	}

	var totalQuizCompletions int64
	db.Model(&courseModels.QuizCompletion{}).Count(&totalQuizCompletions)

	var pointsAwarded int64
	db.Model(&courseModels.QuizCompletion{}).Select("COALESCE(SUM(points_earned), 0)").Scan(&pointsAwarded)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", fiber.Map{
		"totals": fiber.Map{
			"users":             totalUsers,
			"courses":           totalCourses,
			"enrollments":       totalEnrollments,
			"completed_courses": totalCompletions,
			"quiz_completions":  totalQuizCompletions,
			"points_awarded":    pointsAwarded,
		},
		"this_week": fiber.Map{
			"enrollments": countEnrollmentsSince(weekStart),
			"completions": countCompletionsSince(weekStart),
		},
		"this_month": fiber.Map{
			"enrollments": countEnrollmentsSince(monthStart),
			"completions": countCompletionsSince(monthStart),
		},
	})
}
