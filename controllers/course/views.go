package controllers

import (
	"strconv"

	"academy/database"
	"academy/models"
	courseModels "academy/models/course"
	"academy/progress"

	"github.com/gofiber/fiber/v2"
)

// moduleKey is the stable identifier modules carry inside progress records.
func moduleKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// actorFromCtx builds the explicit caller context from what the JWT
// middleware stashed. Falls back to a user lookup when the token predates
// the role claim.
func actorFromCtx(c *fiber.Ctx) (progress.Actor, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return progress.Actor{}, false
	}
	role, ok := c.Locals("role").(string)
	if !ok || role == "" {
		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			return progress.Actor{}, false
		}
		role = user.Role
	}
	return progress.Actor{UserID: userID, Role: role}, true
}

// loadModules fetches a course's modules in gating order.
func loadModules(courseID int) ([]courseModels.Module, error) {
	var modules []courseModels.Module
	err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").
		Find(&modules).Error
	return modules, err
}

// moduleViews translates catalog rows into the evaluator's module views,
// resolving which modules carry a quiz in one query.
func moduleViews(modules []courseModels.Module) []progress.ModuleView {
	ids := make([]uint, len(modules))
	for i, m := range modules {
		ids[i] = m.ID
	}

	hasQuiz := make(map[uint]bool)
	if len(ids) > 0 {
		var quizzes []courseModels.Quiz
		database.Database.Db.Where("module_id IN ? AND is_deleted = ?", ids, false).Find(&quizzes)
		for _, q := range quizzes {
			hasQuiz[q.ModuleID] = true
		}
	}

	views := make([]progress.ModuleView, len(modules))
	for i, m := range modules {
		views[i] = progress.ModuleView{
			ID:      moduleKey(m.ID),
			Title:   m.Title,
			HasQuiz: hasQuiz[m.ID],
		}
	}
	return views
}
