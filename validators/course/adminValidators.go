package courseValidator

import (
	"regexp"
	"strconv"
	"strings"

	"academy/middleware"

	"github.com/gofiber/fiber/v2"
)

// ============ Course Validators ============

// CreateCourseAdmin validates admin course creation request
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Author = strings.TrimSpace(reqData.Author)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Author == "" {
			errors["author"] = "Author is required!"
		} else if matched, _ := regexp.MatchString(`[<>{}]`, reqData.Author); matched {
			errors["author"] = "Author name contains invalid characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates admin course update request
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := parseCourseID(c, "id")
		if err != nil {
			return err
		}

		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			Author       string `json:"author"`
			ThumbnailURL string `json:"thumbnail_url"`
			Status       string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Author = strings.TrimSpace(reqData.Author)
		reqData.Status = strings.TrimSpace(reqData.Status)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description != "" && len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Status != "" {
			validStatuses := map[string]bool{"DRAFT": true, "ACTIVE": true, "INACTIVE": true}
			if !validStatuses[reqData.Status] {
				errors["status"] = "Status must be DRAFT, ACTIVE, or INACTIVE!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// ============ Module Validators ============

// CreateModule validates module creation request
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := parseCourseID(c, "id")
		if err != nil {
			return err
		}

		reqData := new(struct {
			Title           string `json:"title"`
			Description     string `json:"description"`
			OrderIndex      int    `json:"order_index"`
			VideoPlaybackID string `json:"video_playback_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.VideoPlaybackID = strings.TrimSpace(reqData.VideoPlaybackID)

		if reqData.Title == "" {
			errors["title"] = "Module title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Module title must be at least 3 characters long!"
		}

		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates module update request
func UpdateModule() fiber.Handler {
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
			Title           string `json:"title"`
			Description     string `json:"description"`
			OrderIndex      int    `json:"order_index"`
			VideoPlaybackID string `json:"video_playback_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.VideoPlaybackID = strings.TrimSpace(reqData.VideoPlaybackID)

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Module title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// DeleteModule validates module deletion request
func DeleteModule() fiber.Handler {
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

// ============ Quiz Validators ============

// ModuleID validates requests addressing a module's quiz
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := parseModuleID(c, "module_id")
		if err != nil {
			return err
		}

		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// validateQuestions checks a batch of quiz questions in place.
func validateQuestions(questions []struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
}, errors map[string]string) {
	if len(questions) == 0 {
		errors["questions"] = "At least one question is required!"
		return
	}
	for i, q := range questions {
		key := "questions[" + strconv.Itoa(i) + "]"
		if strings.TrimSpace(q.Text) == "" {
			errors[key] = "Question text is required!"
			continue
		}
		if len(q.Options) < 2 {
			errors[key] = "Each question needs at least 2 options!"
			continue
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			errors[key] = "Correct option index is out of range!"
		}
	}
}

// CreateQuiz validates quiz creation request with its questions
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := parseModuleID(c, "module_id")
		if err != nil {
			return err
		}

		reqData := new(struct {
			Title        string `json:"title"`
			PassingScore int    `json:"passing_score"`
			Questions    []struct {
				Text          string   `json:"text"`
				Options       []string `json:"options"`
				CorrectOption int      `json:"correct_option"`
			} `json:"questions"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Quiz title is required!"
		}
		if reqData.PassingScore < 0 || reqData.PassingScore > 100 {
			errors["passing_score"] = "Passing score must be between 0 and 100!"
		}
		validateQuestions(reqData.Questions, errors)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("moduleID", moduleID)
		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// UpdateQuiz validates quiz update request
func UpdateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := parseModuleID(c, "module_id")
		if err != nil {
			return err
		}

		reqData := new(struct {
			Title        string `json:"title"`
			PassingScore int    `json:"passing_score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.PassingScore < 0 || reqData.PassingScore > 100 {
			return middleware.ValidationErrorResponse(c, map[string]string{"passing_score": "Passing score must be between 0 and 100!"})
		}

		c.Locals("moduleID", moduleID)
		c.Locals("validatedQuizUpdate", reqData)
		return c.Next()
	}
}

// AddQuestion validates the add-question request
func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := parseModuleID(c, "module_id")
		if err != nil {
			return err
		}

		reqData := new(struct {
			Text          string   `json:"text"`
			Options       []string `json:"options"`
			CorrectOption int      `json:"correct_option"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Text) == "" {
			errors["text"] = "Question text is required!"
		}
		if len(reqData.Options) < 2 {
			errors["options"] = "At least 2 options are required!"
		} else if reqData.CorrectOption < 0 || reqData.CorrectOption >= len(reqData.Options) {
			errors["correct_option"] = "Correct option index is out of range!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("moduleID", moduleID)
		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// DeleteQuestion validates question deletion request
func DeleteQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionIDStr := strings.TrimSpace(c.Params("question_id"))
		if questionIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question ID is required!", nil)
		}

		questionID, err := strconv.Atoi(questionIDStr)
		if err != nil || questionID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Question ID!", nil)
		}

		c.Locals("questionID", questionID)
		return c.Next()
	}
}

// ============ Progress Validators ============

// StudentProgress validates the per-student progress request
func StudentProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := parseCourseID(c, "course_id")
		if err != nil {
			return err
		}

		studentIDStr := strings.TrimSpace(c.Params("student_id"))
		if studentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Student ID is required!", nil)
		}
		studentID, convErr := strconv.Atoi(studentIDStr)
		if convErr != nil || studentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Student ID!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("studentID", studentID)
		return c.Next()
	}
}

// ============ Deadline Validators ============

// SetDeadline validates the deadline assignment request
func SetDeadline() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := parseCourseID(c, "id")
		if err != nil {
			return err
		}

		reqData := new(struct {
			Deadline string `json:"deadline"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Deadline = strings.TrimSpace(reqData.Deadline)
		if reqData.Deadline == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"deadline": "Deadline is required!"})
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedDeadline", reqData)
		return c.Next()
	}
}

// ============ Certificate Validators ============

// CertificateID validates requests addressing a certificate
func CertificateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		certificateIDStr := strings.TrimSpace(c.Params("certificate_id"))
		if certificateIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate ID is required!", nil)
		}

		certificateID, err := strconv.Atoi(certificateIDStr)
		if err != nil || certificateID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Certificate ID!", nil)
		}

		c.Locals("certificateID", certificateID)
		return c.Next()
	}
}

// RejectCertificate validates certificate rejection request
func RejectCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		certificateIDStr := strings.TrimSpace(c.Params("certificate_id"))
		if certificateIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate ID is required!", nil)
		}

		certificateID, err := strconv.Atoi(certificateIDStr)
		if err != nil || certificateID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Certificate ID!", nil)
		}

		reqData := new(struct {
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Reason = strings.TrimSpace(reqData.Reason)
		if reqData.Reason == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"reason": "Rejection reason is required!"})
		}

		c.Locals("certificateID", certificateID)
		c.Locals("validatedRejection", reqData)
		return c.Next()
	}
}
