package controllers

import (
	"academy/database"
	"academy/middleware"
	courseModels "academy/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateQuiz attaches a quiz with its questions to a module. A module
// carries at most one quiz; creating a second replaces nothing and is
// rejected.
func AdminCreateQuiz(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var existing courseModels.Quiz
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Module already has a quiz!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		Title        string `json:"title"`
		PassingScore int    `json:"passing_score"`
		Questions    []struct {
			Text          string   `json:"text"`
			Options       []string `json:"options"`
			CorrectOption int      `json:"correct_option"`
		} `json:"questions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	passingScore := reqData.PassingScore
	if passingScore == 0 {
		passingScore = 70
	}

	quiz := courseModels.Quiz{
		ModuleID:     uint(moduleID),
		Title:        reqData.Title,
		PassingScore: passingScore,
	}

	tx := database.Database.Db.Begin()

	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	for qi, q := range reqData.Questions {
		question := courseModels.Question{
			QuizID:     quiz.ID,
			Text:       q.Text,
			OrderIndex: qi + 1,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz questions!", nil)
		}
		for oi, opt := range q.Options {
			option := courseModels.QuestionOption{
				QuestionID: question.ID,
				OptionText: opt,
				OrderIndex: oi + 1,
				IsCorrect:  oi == q.CorrectOption,
			}
			if err := tx.Create(&option).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz options!", nil)
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

// AdminGetQuiz returns a module's quiz with questions, options and the
// correct answers. Admin view only; the learner endpoints never expose
// IsCorrect.
func AdminGetQuiz(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []courseModels.Question
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Order("order_index asc").Find(&questions)

	type questionOut struct {
		courseModels.Question
		Options []courseModels.QuestionOption `json:"options"`
	}

	out := make([]questionOut, 0, len(questions))
	for _, q := range questions {
		var options []courseModels.QuestionOption
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", q.ID, false).Order("order_index asc").Find(&options)
		out = append(out, questionOut{Question: q, Options: options})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"quiz":      quiz,
		"questions": out,
	})
}

// AdminUpdateQuiz updates the quiz title and passing score
func AdminUpdateQuiz(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuizUpdate").(*struct {
		Title        string `json:"title"`
		PassingScore int    `json:"passing_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		quiz.Title = reqData.Title
	}
	if reqData.PassingScore > 0 {
		if reqData.PassingScore > 100 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Passing score cannot exceed 100!", nil)
		}
		quiz.PassingScore = reqData.PassingScore
	}

	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

// AdminDeleteQuiz soft-deletes a module's quiz. The module becomes
// quiz-less, so learners completing its video from then on pass it
// automatically.
func AdminDeleteQuiz(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	quiz.IsDeleted = true
	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}

// AdminAddQuestion appends a question with options to a module's quiz
func AdminAddQuestion(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Text          string   `json:"text"`
		Options       []string `json:"options"`
		CorrectOption int      `json:"correct_option"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var maxOrder int
	database.Database.Db.Model(&courseModels.Question{}).Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)

	question := courseModels.Question{
		QuizID:     quiz.ID,
		Text:       reqData.Text,
		OrderIndex: maxOrder + 1,
	}

	tx := database.Database.Db.Begin()

	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	for oi, opt := range reqData.Options {
		option := courseModels.QuestionOption{
			QuestionID: question.ID,
			OptionText: opt,
			OrderIndex: oi + 1,
			IsCorrect:  oi == reqData.CorrectOption,
		}
		if err := tx.Create(&option).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question options!", nil)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

// AdminDeleteQuestion soft-deletes a question from a quiz
func AdminDeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true
	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}
