package courseValidator

import (
	"strconv"
	"strings"

	"learnsphere/middleware"

	"github.com/gofiber/fiber/v2"
)

// paramID validates a positive integer route parameter and stores it in
// Locals under localsKey
func paramID(param, localsKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params(param))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing "+param+" parameter!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+param+" parameter!", nil)
		}

		c.Locals(localsKey, id)
		return c.Next()
	}
}

func GetCourseDetail() fiber.Handler {
	return paramID("id", "courseID")
}

func EnrollCourse() fiber.Handler {
	return paramID("id", "courseID")
}

func CourseReviews() fiber.Handler {
	return paramID("id", "courseID")
}

func GetCourseProgress() fiber.Handler {
	return paramID("course_id", "courseID")
}

// MarkTopicComplete validates the course and topic route parameters
func MarkTopicComplete() fiber.Handler {
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

// QuizParams validates the course and quiz route parameters
func QuizParams() fiber.Handler {
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

func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `query:"page" json:"page"`
			Limit *int `query:"limit" json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		// Pagination is optional; validate only when supplied
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
