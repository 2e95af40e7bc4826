package courseValidator

import (
	"strings"

	"academy/middleware"

	"github.com/gofiber/fiber/v2"
)

// SessionID validates requests addressing a quiz session
func SessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := strings.TrimSpace(c.Params("session_id"))
		if sessionID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Session ID is required!", nil)
		}

		c.Locals("sessionID", sessionID)
		return c.Next()
	}
}

// QuizSelection validates the answer selection request
func QuizSelection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := strings.TrimSpace(c.Params("session_id"))
		if sessionID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Session ID is required!", nil)
		}

		reqData := new(struct {
			OptionIndex *int `json:"option_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.OptionIndex == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"option_index": "Option index is required!"})
		}
		if *reqData.OptionIndex < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"option_index": "Option index cannot be negative!"})
		}

		c.Locals("sessionID", sessionID)
		c.Locals("validatedSelection", reqData)
		return c.Next()
	}
}
