package courseValidator

import (
	"academy/middleware"

	"github.com/gofiber/fiber/v2"
)

// TimeUpdate validates the periodic playback position event. Both fields
// are required so a missing value is never mistaken for zero.
func TimeUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := parseCourseID(c, "course_id")
		if err != nil {
			return err
		}
		moduleID, err := parseModuleID(c, "module_id")
		if err != nil {
			return err
		}

		reqData := new(struct {
			CurrentTime *float64 `json:"current_time"`
			Duration    *float64 `json:"duration"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CurrentTime == nil {
			errors["current_time"] = "Current time is required!"
		} else if *reqData.CurrentTime < 0 {
			errors["current_time"] = "Current time cannot be negative!"
		}

		if reqData.Duration == nil {
			errors["duration"] = "Duration is required!"
		} else if *reqData.Duration <= 0 {
			errors["duration"] = "Duration must be a positive number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		c.Locals("validatedTimeUpdate", reqData)
		return c.Next()
	}
}
