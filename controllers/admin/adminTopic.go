package controllers

import (
	"learnsphere/database"
	"learnsphere/middleware"
	courseModels "learnsphere/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateTopic creates a topic within a module
func AdminCreateTopic(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedTopic").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ContentType string `json:"content_type"`
		ContentURL  string `json:"content_url"`
		Duration    int    `json:"duration"`
		OrderIndex  int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	orderIndex := reqData.OrderIndex
	if orderIndex == 0 {
		var maxOrder int
		database.Database.Db.Model(&courseModels.Topic{}).Where("module_id = ? AND is_deleted = ?", moduleID, false).Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		orderIndex = maxOrder + 1
	}

	topic := courseModels.Topic{
		CourseID:    uint(courseID),
		ModuleID:    uint(moduleID),
		Title:       reqData.Title,
		Description: reqData.Description,
		ContentType: reqData.ContentType,
		ContentURL:  reqData.ContentURL,
		Duration:    reqData.Duration,
		OrderIndex:  orderIndex,
	}

	if err := database.Database.Db.Create(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Topic created successfully!", topic)
}

// AdminUpdateTopic updates an existing topic
func AdminUpdateTopic(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	topicID := c.Locals("topicID").(int)

	var topic courseModels.Topic
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", topicID, courseID, false).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	reqData, ok := c.Locals("validatedTopicUpdate").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ContentType string `json:"content_type"`
		ContentURL  string `json:"content_url"`
		Duration    int    `json:"duration"`
		OrderIndex  int    `json:"order_index"`
		IsPublished *bool  `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		topic.Title = reqData.Title
	}
	if reqData.Description != "" {
		topic.Description = reqData.Description
	}
	if reqData.ContentType != "" {
		topic.ContentType = reqData.ContentType
	}
	if reqData.ContentURL != "" {
		topic.ContentURL = reqData.ContentURL
	}
	if reqData.Duration > 0 {
		topic.Duration = reqData.Duration
	}
	if reqData.OrderIndex > 0 {
		topic.OrderIndex = reqData.OrderIndex
	}
	if reqData.IsPublished != nil {
		topic.IsPublished = *reqData.IsPublished
	}

	if err := database.Database.Db.Save(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic updated successfully!", topic)
}

// AdminDeleteTopic soft deletes a topic
func AdminDeleteTopic(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	topicID := c.Locals("topicID").(int)

	var topic courseModels.Topic
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", topicID, courseID, false).First(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	topic.IsDeleted = true
	topic.IsPublished = false

	if err := database.Database.Db.Save(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete topic!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic deleted successfully!", nil)
}
