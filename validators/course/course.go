package courseValidator

import (
	"strconv"
	"strings"

	"academy/middleware"

	"github.com/gofiber/fiber/v2"
)

// parseCourseID reads and validates the course ID route parameter.
func parseCourseID(c *fiber.Ctx, param string) (int, error) {
	idStr := strings.TrimSpace(c.Params(param))
	if idStr == "" {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
	}
	return id, nil
}

// parseModuleID reads and validates the module ID route parameter.
func parseModuleID(c *fiber.Ctx, param string) (int, error) {
	idStr := strings.TrimSpace(c.Params(param))
	if idStr == "" {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module ID is required!", nil)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
	}
	return id, nil
}

// ListCourses validates the course listing request with pagination
func ListCourses() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// CourseID validates requests addressing a single course
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := parseCourseID(c, "id")
		if err != nil {
			return err
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CourseModule validates requests addressing a module within a course
func CourseModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := parseCourseID(c, "course_id")
		if err != nil {
			return err
		}

		moduleID, err := parseModuleID(c, "module_id")
		if err != nil {
			return err
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}
