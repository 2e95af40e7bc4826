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

// AdminListDeadlines returns the full course deadline map
func AdminListDeadlines(c *fiber.Ctx) error {
	deadlines, err := store.Deadlines.All()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch deadlines!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deadlines fetched successfully!", deadlines)
}

// AdminSetDeadline sets a course's completion deadline. Deadlines are
// display-only: a past deadline never locks anything.
func AdminSetDeadline(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedDeadline").(*struct {
		Deadline string `json:"deadline"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, err := time.Parse(progress.DeadlineLayout, reqData.Deadline); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Deadline must be a YYYY-MM-DD date!", nil)
	}

	if err := store.Deadlines.Set(uint(courseID), reqData.Deadline); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save deadline!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deadline saved successfully!", fiber.Map{
		"course_id": course.ID,
		"deadline":  reqData.Deadline,
	})
}

// AdminRemoveDeadline clears a course's deadline
func AdminRemoveDeadline(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	if err := store.Deadlines.Remove(uint(courseID)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove deadline!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Deadline removed successfully!", nil)
}
