package controllers

import (
	"log"

	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"academy/progress"

	"github.com/gofiber/fiber/v2"
)

// visibleStudents returns the students the caller may see: an admin sees
// only accounts they provisioned, a super admin sees every student.
func visibleStudents(actor progress.Actor) ([]models.User, error) {
	query := database.Database.Db.Where("role = ? AND is_deleted = ?", progress.RoleStudent, false)
	if actor.Role == progress.RoleAdmin {
		query = query.Where("created_by = ?", actor.UserID)
	}

	var students []models.User
	err := query.Order("id asc").Find(&students).Error
	return students, err
}

// studentRecord reads a student's stored progress row straight from the
// database. Admin views bypass the learner cache so they always show what
// actually persisted.
func studentRecord(userID, courseID uint) progress.Record {
	var row courseModels.CourseProgress
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&row).Error; err != nil {
		return progress.EmptyRecord()
	}
	rec, err := progress.DecodeRecord(row.ModuleProgress)
	if err != nil {
		log.Printf("Error decoding progress for user %d course %d: %v", userID, courseID, err)
		return progress.EmptyRecord()
	}
	rec.CurrentModuleIndex = row.CurrentModuleIndex
	return rec
}

// AdminCourseProgressList lists every visible student's completion summary
// for a course
func AdminCourseProgressList(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	modules, err := loadModules(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}
	views := moduleViews(modules)

	students, err := visibleStudents(actor)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	type studentProgress struct {
		UserID  uint             `json:"user_id"`
		Name    string           `json:"name"`
		Email   string           `json:"email"`
		Summary progress.Summary `json:"summary"`
	}

	list := make([]studentProgress, 0, len(students))
	for _, s := range students {
		rec := studentRecord(s.ID, uint(courseID))
		list = append(list, studentProgress{
			UserID:  s.ID,
			Name:    s.Name,
			Email:   s.Email,
			Summary: progress.Summarize(views, rec),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"course_id": course.ID,
		"students":  list,
	})
}

// AdminStudentProgressDetails returns one student's per-module states for a
// course
func AdminStudentProgressDetails(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	studentID := c.Locals("studentID").(int)

	var student models.User
	if err := database.Database.Db.Where("id = ? AND role = ? AND is_deleted = ?", studentID, progress.RoleStudent, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}
	if actor.Role == progress.RoleAdmin && student.CreatedBy != actor.UserID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view students you created!", nil)
	}

	modules, err := loadModules(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}
	views := moduleViews(modules)

	rec := studentRecord(student.ID, uint(courseID))
	states := progress.Evaluate(views, rec)

	type moduleState struct {
		ModuleID string               `json:"module_id"`
		Title    string               `json:"title"`
		State    progress.ModuleState `json:"state"`
	}

	out := make([]moduleState, len(views))
	for i, v := range views {
		out[i] = moduleState{ModuleID: v.ID, Title: v.Title, State: states[i]}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"student": fiber.Map{
			"id":    student.ID,
			"name":  student.Name,
			"email": student.Email,
		},
		"modules":              out,
		"summary":              progress.Summarize(views, rec),
		"current_module_index": rec.CurrentModuleIndex,
	})
}

// AdminCompletedStudents lists visible students who finished every module
// of a course. Feeds the certificate approval queue.
func AdminCompletedStudents(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	modules, err := loadModules(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}
	views := moduleViews(modules)

	students, err := visibleStudents(actor)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	type completedStudent struct {
		UserID uint   `json:"user_id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
	}

	completed := make([]completedStudent, 0)
	for _, s := range students {
		rec := studentRecord(s.ID, uint(courseID))
		if progress.Summarize(views, rec).CourseComplete {
			completed = append(completed, completedStudent{UserID: s.ID, Name: s.Name, Email: s.Email})
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completed students fetched successfully!", completed)
}

// AdminDashboardStats returns the counters the admin dashboard shows:
// visible students, published courses, and pending certificates.
func AdminDashboardStats(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	studentQuery := database.Database.Db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", progress.RoleStudent, false)
	if actor.Role == progress.RoleAdmin {
		studentQuery = studentQuery.Where("created_by = ?", actor.UserID)
	}
	var studentCount int64
	studentQuery.Count(&studentCount)

	var courseCount int64
	database.Database.Db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&courseCount)

	var pendingCertificates int64
	database.Database.Db.Model(&courseModels.Certificate{}).Where("status = ? AND is_deleted = ?", "PENDING", false).Count(&pendingCertificates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"students":             studentCount,
		"published_courses":    courseCount,
		"pending_certificates": pendingCertificates,
	})
}
