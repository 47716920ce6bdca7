package controllers

import (
	"learnsphere/database"
	"learnsphere/middleware"
	courseModels "learnsphere/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCourse creates a new course in DRAFT status
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Author       string `json:"author"`
		Duration     int64  `json:"duration"`
		ThumbnailURL string `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Author:       reqData.Author,
		Duration:     reqData.Duration,
		ThumbnailURL: reqData.ThumbnailURL,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Author       string `json:"author"`
		Duration     int64  `json:"duration"`
		Status       string `json:"status"`
		ThumbnailURL string `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Author != "" {
		course.Author = reqData.Author
	}
	if reqData.Duration > 0 {
		course.Duration = reqData.Duration
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}
	if reqData.ThumbnailURL != "" {
		course.ThumbnailURL = reqData.ThumbnailURL
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminPublishCourse publishes a course and marks it ACTIVE
func AdminPublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsPublished = true
	course.Status = "ACTIVE"

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// AdminDeleteCourse soft deletes a course
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	course.IsPublished = false

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetAllCourses lists all non-deleted courses including drafts
func AdminGetAllCourses(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
