package controllers

import (
	"time"

	"academy/database"
	"academy/middleware"
	courseModels "academy/models/course"
	"academy/progress"
	"academy/store"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails gets course details with its ordered modules. Quiz
// definitions are shaped for learners: option flags that reveal the answer
// are stripped.
func GetCourseDetails(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	modules, err := loadModules(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	type ModuleWithQuiz struct {
		courseModels.Module
		Quiz *learnerQuiz `json:"quiz,omitempty"`
	}

	result := make([]ModuleWithQuiz, len(modules))
	for i, m := range modules {
		result[i] = ModuleWithQuiz{Module: m}
		if q, ok := learnerQuizForModule(m.ID); ok {
			result[i].Quiz = q
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":  course,
		"modules": result,
	})
}

// GetCourseStates evaluates the learner's gating state for every module of
// the course, with the overall summary, resume position and deadline info.
func GetCourseStates(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	modules, err := loadModules(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	views := moduleViews(modules)
	rec := store.Progress.Load(actor, uint(courseID))
	states := progress.Evaluate(views, rec)
	summary := progress.Summarize(views, rec)

	type ModuleStateView struct {
		ModuleID string               `json:"module_id"`
		Title    string               `json:"title"`
		State    progress.ModuleState `json:"state"`
	}

	stateViews := make([]ModuleStateView, len(views))
	for i, v := range views {
		stateViews[i] = ModuleStateView{ModuleID: v.ID, Title: v.Title, State: states[i]}
	}

	data := fiber.Map{
		"module_states":        stateViews,
		"summary":              summary,
		"current_module_index": rec.CurrentModuleIndex,
	}

	// Deadlines are display-only; an overdue course is never blocked
	if date, ok := store.Deadlines.Get(uint(courseID)); ok {
		data["deadline"] = date
		if days, ok := progress.DaysRemaining(time.Now(), date); ok {
			data["days_remaining"] = days
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course states fetched successfully!", data)
}
