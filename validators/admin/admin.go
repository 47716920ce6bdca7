package adminValidator

import (
	"strconv"
	"strings"

	adminControllers "learnsphere/controllers/admin"
	"learnsphere/middleware"

	"github.com/gofiber/fiber/v2"
)

var validContentTypes = map[string]bool{
	"VIDEO":    true,
	"DOCUMENT": true,
	"IMAGE":    true,
}

var validCourseStatuses = map[string]bool{
	"DRAFT":    true,
	"ACTIVE":   true,
	"INACTIVE": true,
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return paramID("id", "courseID")
}

// CourseModuleParams validates :course_id and :module_id
func CourseModuleParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("course_id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course_id parameter!", nil)
		}

		moduleID, err := strconv.Atoi(strings.TrimSpace(c.Params("module_id")))
		if err != nil || moduleID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module_id parameter!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// CourseTopicParams validates :course_id and :topic_id
func CourseTopicParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("course_id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course_id parameter!", nil)
		}

		topicID, err := strconv.Atoi(strings.TrimSpace(c.Params("topic_id")))
		if err != nil || topicID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid topic_id parameter!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("topicID", topicID)
		return c.Next()
	}
}

// CourseQuizParams validates :course_id and :quiz_id
func CourseQuizParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("course_id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course_id parameter!", nil)
		}

		quizID, err := strconv.Atoi(strings.TrimSpace(c.Params("quiz_id")))
		if err != nil || quizID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz_id parameter!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("quizID", quizID)
		return c.Next()
	}
}

func paramID(param, localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(strings.TrimSpace(c.Params(param)))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" parameter!", nil)
		}
		c.Locals(localsKey, id)
		return c.Next()
	}
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			Duration     int64  `json:"duration"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			Duration     int64  `json:"duration"`
			Status       string `json:"status"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Status != "" && !validCourseStatuses[reqData.Status] {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be one of DRAFT, ACTIVE, INACTIVE!",
			})
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Title) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Title is required!",
			})
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

func CreateTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			ContentType string `json:"content_type"`
			ContentURL  string `json:"content_url"`
			Duration    int    `json:"duration"`
			OrderIndex  int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.ContentType == "" {
			reqData.ContentType = "VIDEO"
		} else if !validContentTypes[reqData.ContentType] {
			errors["content_type"] = "Content type must be one of VIDEO, DOCUMENT, IMAGE!"
		}
		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTopic", reqData)
		return c.Next()
	}
}

func UpdateTopic() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			ContentType string `json:"content_type"`
			ContentURL  string `json:"content_url"`
			Duration    int    `json:"duration"`
			OrderIndex  int    `json:"order_index"`
			IsPublished *bool  `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.ContentType != "" && !validContentTypes[reqData.ContentType] {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"content_type": "Content type must be one of VIDEO, DOCUMENT, IMAGE!",
			})
		}

		c.Locals("validatedTopicUpdate", reqData)
		return c.Next()
	}
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminControllers.QuizRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.PassingScore < 0 || reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}
		if len(reqData.Questions) == 0 {
			errors["questions"] = "Quiz must have at least one question!"
		}
		for _, q := range reqData.Questions {
			if strings.TrimSpace(q.Text) == "" {
				errors["questions"] = "Every question needs text!"
				break
			}
			if len(q.Options) < 2 {
				errors["questions"] = "Every question needs at least two options!"
				break
			}
			correct := 0
			for _, opt := range q.Options {
				if opt.IsCorrect {
					correct++
				}
			}
			if correct != 1 {
				errors["questions"] = "Every question needs exactly one correct option!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}
