package controllers

import (
	"academy/database"
	"academy/middleware"
	courseModels "academy/models/course"
	"academy/progress"
	"academy/store"

	"github.com/gofiber/fiber/v2"
)

// GetProgress loads the learner's reconciled record for a course.
func GetProgress(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	rec := store.Progress.Load(actor, uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", rec)
}

// SaveProgress replaces the learner's record wholesale. The UI owns the
// record shape; the store persists cache-first, remote in the background.
func SaveProgress(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var rec progress.Record
	if err := c.BodyParser(&rec); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if rec.ModuleProgress == nil {
		rec.ModuleProgress = []progress.ModuleProgress{}
	}

	store.Progress.Save(actor, uint(courseID), rec)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress saved successfully!", rec)
}

// findModuleView resolves the module inside the course's ordered views.
func findModuleView(courseID, moduleID int) ([]progress.ModuleView, *progress.ModuleView, error) {
	modules, err := loadModules(courseID)
	if err != nil {
		return nil, nil, err
	}
	views := moduleViews(modules)
	key := moduleKey(uint(moduleID))
	for i := range views {
		if views[i].ID == key {
			return views, &views[i], nil
		}
	}
	return views, nil, nil
}

// VideoComplete handles the explicit end-of-stream event for a module's
// video. Idempotent: replaying the event changes nothing.
func VideoComplete(c *fiber.Ctx) error {
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

	rec := store.Progress.Load(actor, uint(courseID))
	progress.ApplyVideoComplete(&rec, *view)
	store.Progress.Save(actor, uint(courseID), rec)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video completion recorded!", fiber.Map{
		"record":  rec,
		"states":  progress.Evaluate(views, rec),
		"summary": progress.Summarize(views, rec),
	})
}

// VideoTimeUpdate handles the periodic playback position event. Once the
// watched threshold is crossed the module's video counts as complete, same
// as an end-of-stream event.
func VideoTimeUpdate(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	reqData, ok := c.Locals("validatedTimeUpdate").(*struct {
		CurrentTime *float64 `json:"current_time"`
		Duration    *float64 `json:"duration"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	views, view, err := findModuleView(courseID, moduleID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}
	if view == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if !progress.Watched(*reqData.CurrentTime, *reqData.Duration) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Position recorded.", fiber.Map{
			"video_completed": false,
		})
	}

	rec := store.Progress.Load(actor, uint(courseID))
	progress.ApplyVideoComplete(&rec, *view)
	store.Progress.Save(actor, uint(courseID), rec)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video completion recorded!", fiber.Map{
		"video_completed": true,
		"record":          rec,
		"summary":         progress.Summarize(views, rec),
	})
}

// SelectModule moves the learner's resume pointer. Navigation into a locked
// module is rejected; the pointer never affects gating.
func SelectModule(c *fiber.Ctx) error {
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

	rec := store.Progress.Load(actor, uint(courseID))
	state, err := progress.StateOf(views, rec, view.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}
	if state == progress.StateLocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Module is locked! Complete the previous module first.", nil)
	}

	for i, v := range views {
		if v.ID == view.ID {
			rec.CurrentModuleIndex = i
		}
	}
	store.Progress.Save(actor, uint(courseID), rec)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module selected.", fiber.Map{
		"current_module_index": rec.CurrentModuleIndex,
		"state":                state,
	})
}
