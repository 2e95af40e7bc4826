package controllers

import (
	"fmt"
	"log"
	"time"

	"academy/database"
	"academy/middleware"
	"academy/models"
	courseModels "academy/models/course"
	"academy/progress"
	"academy/store"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestCertificate files a certificate request for a finished course. The
// request is rejected unless every module is completed, and a student holds
// at most one live request per course.
func RequestCertificate(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	modules, err := loadModules(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}
	views := moduleViews(modules)

	rec := store.Progress.Load(actor, uint(courseID))
	if !progress.Summarize(views, rec).CourseComplete {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete all modules before requesting a certificate!", nil)
	}

	var existing courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND status IN ? AND is_deleted = ?", actor.UserID, courseID, []string{"PENDING", "APPROVED"}, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already requested for this course!", existing)
	}

	certificate := courseModels.Certificate{
		UserID:      actor.UserID,
		CourseID:    uint(courseID),
		Status:      "PENDING",
		RequestedAt: time.Now(),
	}
	if err := database.Database.Db.Create(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to request certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate requested successfully!", certificate)
}

// GetUserCertificates lists the caller's certificates across courses
func GetUserCertificates(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", actor.UserID, false).Order("id desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certificates)
}

// AdminPendingCertificates lists pending requests from visible students
func AdminPendingCertificates(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	students, err := visibleStudents(actor)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	byID := make(map[uint]models.User, len(students))
	ids := make([]uint, len(students))
	for i, s := range students {
		byID[s.ID] = s
		ids[i] = s.ID
	}

	var certificates []courseModels.Certificate
	if len(ids) > 0 {
		if err := database.Database.Db.Where("user_id IN ? AND status = ? AND is_deleted = ?", ids, "PENDING", false).Order("requested_at asc").Find(&certificates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
		}
	}

	type pendingOut struct {
		courseModels.Certificate
		StudentName  string `json:"student_name"`
		StudentEmail string `json:"student_email"`
	}

	out := make([]pendingOut, 0, len(certificates))
	for _, cert := range certificates {
		s := byID[cert.UserID]
		out = append(out, pendingOut{Certificate: cert, StudentName: s.Name, StudentEmail: s.Email})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending certificates fetched successfully!", out)
}

// certificateForReview fetches a pending certificate and enforces the
// caller's student visibility.
func certificateForReview(c *fiber.Ctx, actor progress.Actor) (*courseModels.Certificate, *models.User, error) {
	certificateID := c.Locals("certificateID").(int)

	var certificate courseModels.Certificate
	if err := database.Database.Db.Where("id = ? AND status = ? AND is_deleted = ?", certificateID, "PENDING", false).First(&certificate).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Pending certificate not found!", nil)
	}

	var student models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", certificate.UserID, false).First(&student).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}
	if actor.Role == progress.RoleAdmin && student.CreatedBy != actor.UserID {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only review certificates of students you created!", nil)
	}

	return &certificate, &student, nil
}

// AdminApproveCertificate approves a pending request, stamps the
// certificate number and emails the student
func AdminApproveCertificate(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificate, student, err := certificateForReview(c, actor)
	if err != nil {
		return err
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", certificate.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	now := time.Now()
	approvedBy := actor.UserID
	certificate.Status = "APPROVED"
	certificate.CertificateNumber = fmt.Sprintf("CERT-%d-%d-%d", certificate.CourseID, certificate.UserID, now.Unix())
	certificate.ApprovedAt = &now
	certificate.ApprovedBy = &approvedBy

	if err := database.Database.Db.Save(certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate!", nil)
	}

	go func() {
		if err := utils.SendCertificateEmail(student.Email, student.Name, course.Title, certificate.CertificateNumber); err != nil {
			log.Printf("Error sending certificate email to %s: %v", student.Email, err)
		}
	}()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate approved successfully!", certificate)
}

// AdminRejectCertificate rejects a pending request with a reason. The
// student may request again.
func AdminRejectCertificate(c *fiber.Ctx) error {
	actor, ok := actorFromCtx(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificate, student, err := certificateForReview(c, actor)
	if err != nil {
		return err
	}

	reqData, ok := c.Locals("validatedRejection").(*struct {
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	certificate.Status = "REJECTED"
	certificate.RejectionReason = reqData.Reason

	if err := database.Database.Db.Save(certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject certificate!", nil)
	}

	log.Printf("Certificate %d for user %d rejected by %d", certificate.ID, student.ID, actor.UserID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate rejected successfully!", certificate)
}
