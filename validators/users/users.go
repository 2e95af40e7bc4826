package userValidator

import (
	"regexp"
	"strconv"
	"strings"

	"academy/middleware"

	"github.com/gofiber/fiber/v2"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// CreateUser validates account provisioning requests
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Email = strings.TrimSpace(reqData.Email)

		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		} else if len(reqData.Name) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if reqData.Email == "" {
			errors["email"] = "Email is required!"
		} else if !emailRegex.MatchString(reqData.Email) {
			errors["email"] = "Invalid email format!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateUser", reqData)
		return c.Next()
	}
}

// UserList validates the user listing request with pagination
func UserList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Page < 1 {
			reqData.Page = 1
		}
		if reqData.Limit < 1 || reqData.Limit > 100 {
			reqData.Limit = 10
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}

// parseTargetUserID reads and validates the target user route parameter.
func parseTargetUserID(c *fiber.Ctx) (int, error) {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
	}
	return id, nil
}

// UpdateRole validates the role change request
func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, err := parseTargetUserID(c)
		if err != nil {
			return err
		}

		reqData := new(struct {
			Role string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Role = strings.ToUpper(strings.TrimSpace(reqData.Role))
		if reqData.Role == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"role": "Role is required!"})
		}

		c.Locals("targetUserID", targetID)
		c.Locals("validatedRoleUpdate", reqData)
		return c.Next()
	}
}

// DeleteUser validates the user deletion request
func DeleteUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, err := parseTargetUserID(c)
		if err != nil {
			return err
		}

		c.Locals("targetUserID", targetID)
		return c.Next()
	}
}
