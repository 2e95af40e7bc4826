package controllers

import (
	"log"

	"academy/database"
	"academy/middleware"
	courseModels "academy/models/course"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateModule creates a new module in a course. When a video playback
// ID is supplied, the video host is asked for the asset so a bad ID fails
// here and not in a learner's player; the reported duration is stored for
// the watched-threshold rule.
func AdminCreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	// Check if course exists
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		OrderIndex      int    `json:"order_index"`
		VideoPlaybackID string `json:"video_playback_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Get the next order index if not provided
	orderIndex := reqData.OrderIndex
	if orderIndex == 0 {
		var maxOrder int
		database.Database.Db.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		orderIndex = maxOrder + 1
	}

	module := courseModels.Module{
		CourseID:        uint(courseID),
		Title:           reqData.Title,
		Description:     reqData.Description,
		OrderIndex:      orderIndex,
		VideoPlaybackID: reqData.VideoPlaybackID,
	}

	if reqData.VideoPlaybackID != "" {
		asset, err := utils.GetVideoAsset(reqData.VideoPlaybackID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video playback ID not found on the video host!", nil)
		}
		module.VideoDuration = asset.Duration
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// AdminUpdateModule updates an existing module
func AdminUpdateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		OrderIndex      int    `json:"order_index"`
		VideoPlaybackID string `json:"video_playback_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Description != "" {
		module.Description = reqData.Description
	}
	if reqData.OrderIndex > 0 {
		module.OrderIndex = reqData.OrderIndex
	}
	if reqData.VideoPlaybackID != "" && reqData.VideoPlaybackID != module.VideoPlaybackID {
		asset, err := utils.GetVideoAsset(reqData.VideoPlaybackID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video playback ID not found on the video host!", nil)
		}
		module.VideoPlaybackID = reqData.VideoPlaybackID
		module.VideoDuration = asset.Duration
	}

	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// AdminDeleteModule soft-deletes a module and its quiz
func AdminDeleteModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	module.IsDeleted = true
	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	// Cascade the soft delete to the module's quiz
	if err := database.Database.Db.Model(&courseModels.Quiz{}).
		Where("module_id = ? AND is_deleted = ?", moduleID, false).
		Update("is_deleted", true).Error; err != nil {
		log.Printf("Error deleting quiz for module %d: %v", moduleID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// AdminListModules lists a course's modules in gating order
func AdminListModules(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	modules, err := loadModules(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modules)
}
