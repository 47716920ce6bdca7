package authValidator

import (
	"strings"

	"learnsphere/middleware"

	"github.com/gofiber/fiber/v2"
)

func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Mobile   string `json:"mobile"`
			Password string `json:"password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Name
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		// Validate Email
		email := strings.TrimSpace(reqData.Email)
		if email == "" {
			errors["email"] = "Email is required!"
		} else if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
			errors["email"] = "Email is not valid!"
		}

		// Validate Password
		if len(reqData.Password) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Email = email
		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Email) == "" {
			errors["email"] = "Email is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Email = strings.TrimSpace(reqData.Email)
		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
