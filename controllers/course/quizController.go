package controllers

import (
	"academy/database"
	"academy/middleware"
	courseModels "academy/models/course"
	"academy/progress"
	"academy/quiz"
	"academy/store"

	"github.com/gofiber/fiber/v2"
)

// learnerQuiz is the quiz shape exposed to students: questions and option
// texts only, never the correct index.
type learnerQuiz struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	PassingScore int               `json:"passing_score"`
	Questions    []learnerQuestion `json:"questions"`
}

type learnerQuestion struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// learnerQuizForModule loads the module's quiz stripped for learners.
func learnerQuizForModule(moduleID uint) (*learnerQuiz, bool) {
	def, ok := quizDefinition(moduleID)
	if !ok {
		return nil, false
	}

	var row courseModels.Quiz
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&row).Error; err != nil {
		return nil, false
	}

	lq := &learnerQuiz{ID: row.ID, Title: def.Title, PassingScore: def.PassingScore}
	for _, q := range def.Questions {
		lq.Questions = append(lq.Questions, learnerQuestion{Text: q.Text, Options: q.Options})
	}
	return lq, true
}

// quizDefinition assembles the session definition for a module's quiz:
// ordered questions, ordered options, correct index resolved per question.
func quizDefinition(moduleID uint) (quiz.Definition, bool) {
	var row courseModels.Quiz
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", moduleID, false).First(&row).Error; err != nil {
		return quiz.Definition{}, false
	}

	var questions []courseModels.Question
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", row.ID, false).
		Order("order_index asc").Find(&questions)

	def := quiz.Definition{
		ID:           moduleKey(row.ID),
		ModuleID:     moduleKey(moduleID),
		Title:        row.Title,
		PassingScore: row.PassingScore,
	}

	for _, q := range questions {
		var options []courseModels.QuestionOption
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", q.ID, false).
			Order("order_index asc").Find(&options)

		qq := quiz.Question{ID: moduleKey(q.ID), Text: q.Text, Correct: -1}
		for i, opt := range options {
			qq.Options = append(qq.Options, opt.OptionText)
			if opt.IsCorrect {
				qq.Correct = i
			}
		}
		if len(qq.Options) < 2 || qq.Correct < 0 {
			// Malformed question; skip rather than break the attempt
			continue
		}
		def.Questions = append(def.Questions, qq)
	}

	if len(def.Questions) == 0 {
		return quiz.Definition{}, false
	}
	return def, true
}

// StartQuiz opens an in-memory session for the module's quiz. Gating is
// enforced here: a locked module's quiz cannot be started. Entering results
// later feeds the outcome back into the progress record.
func StartQuiz(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	views, view, err := findModuleView(courseID, moduleID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}
	if view == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	// Gating comes first: a locked module reveals nothing, not even whether
	// it carries a quiz.
	rec := store.Progress.Load(actor, uint(courseID))
	state, err := progress.StateOf(views, rec, view.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}
	if state == progress.StateLocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Module is locked! Complete the previous module first.", nil)
	}

	def, ok := quizDefinition(uint(moduleID))
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This module has no quiz!", nil)
	}

	// A stored pass is terminal; there is nothing left to attempt.
	if mp := rec.Find(view.ID); mp != nil && mp.Quiz != nil && mp.Quiz.Passed {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Quiz already passed!", nil)
	}

	moduleIDKey := view.ID
	onComplete := func(score int, passed bool) {
		latest := store.Progress.Load(actor, uint(courseID))
		progress.ApplyQuizResult(&latest, moduleIDKey, score, passed)
		store.Progress.Save(actor, uint(courseID), latest)
	}

	token, state0 := quiz.Sessions.Start(actor.UserID, def, onComplete)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz session started.", fiber.Map{
		"session_id": token,
		"state":      state0,
	})
}

// quizAction runs one transition against the caller's session.
func quizAction(c *fiber.Ctx, message string, fn func(*quiz.Session) bool) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionID := c.Locals("sessionID").(string)

	state, found, applied := quiz.Sessions.Do(sessionID, userID, fn)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz session not found!", nil)
	}
	if !applied {
		// Invalid transitions are no-ops; the state answers why
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Action not allowed in the current quiz state!", state)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, state)
}

// QuizSelect records the learner's current answer choice.
func QuizSelect(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSelection").(*struct {
		OptionIndex *int `json:"option_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	return quizAction(c, "Answer selected.", func(s *quiz.Session) bool {
		return s.Select(*reqData.OptionIndex)
	})
}

// QuizSubmit grades the current selection and reveals correctness.
func QuizSubmit(c *fiber.Ctx) error {
	return quizAction(c, "Answer submitted.", func(s *quiz.Session) bool {
		return s.Submit()
	})
}

// QuizAdvance moves past feedback to the next question or the results.
func QuizAdvance(c *fiber.Ctx) error {
	return quizAction(c, "Advanced.", func(s *quiz.Session) bool {
		return s.Advance()
	})
}

// QuizRetry restarts a failed attempt.
func QuizRetry(c *fiber.Ctx) error {
	return quizAction(c, "Quiz restarted.", func(s *quiz.Session) bool {
		return s.Retry()
	})
}

// QuizState returns the session snapshot without mutating it.
func QuizState(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionID := c.Locals("sessionID").(string)

	state, found := quiz.Sessions.Get(sessionID, userID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz session not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz state.", state)
}
