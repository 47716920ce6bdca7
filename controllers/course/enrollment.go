package controllers

import (
	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	courseModels "learnsphere/models/course"
	"learnsphere/utils"

	"github.com/gofiber/fiber/v2"
)

func EnrollInCourse(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated course ID
	courseID := c.Locals("courseID").(int)

	// Check if course exists and is active
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ? AND status = ?", courseID, false, true, "ACTIVE").First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: uint(courseID),
		Status:   "ENROLLED",
	}

	// Save to database with transaction
	tx := database.Database.Db.Begin()
	if err := tx.Create(&enrollment).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	if user.Email != "" {
		go utils.SendEnrollmentEmail(user.Email, user.Name, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

func GetUserEnrollmentsList(c *fiber.Ctx) error {
	// Retrieve userId from JWT middleware
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND is_deleted = ?", userID, false)

	var total int64
	db.Count(&total)

	var enrollments []courseModels.Enrollment
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	// Attach course summaries
	type EnrollmentWithCourse struct {
		courseModels.Enrollment
		Course courseModels.Course `json:"course"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, e := range enrollments {
		result[i] = EnrollmentWithCourse{Enrollment: e}
		database.Database.Db.Where("id = ?", e.CourseID).First(&result[i].Course)
	}

	response := map[string]interface{}{
		"enrollments": result,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", response)
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
	})
}
