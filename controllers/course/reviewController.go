package controllers

import (
	"learnsphere/database"
	"learnsphere/middleware"
	"learnsphere/models"
	courseModels "learnsphere/models/course"

	"github.com/gofiber/fiber/v2"
)

// SubmitReview allows an enrolled user to review a course once
func SubmitReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData := new(struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Rating < 1 || reqData.Rating > 5 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Reviews require enrollment
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to review this course!", nil)
	}

	// Check if user has already reviewed this course
	var existingReview models.CourseReview
	if err := db.Where("course_id = ? AND user_id = ? AND is_deleted = ?", courseID, userID, false).First(&existingReview).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	review := models.CourseReview{
		UserID:   userID,
		CourseID: uint(courseID),
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}

	if err := db.Create(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review submitted successfully!", review)
}

// GetCourseReviews returns reviews for a course (visible to all learners)
func GetCourseReviews(c *fiber.Ctx) error {
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

	db := database.Database.Db.Model(&models.CourseReview{}).Where("course_id = ? AND is_deleted = ?", courseID, false)

	var total int64
	db.Count(&total)

	var reviews []models.CourseReview
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", fiber.Map{
		"reviews": reviews,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
