package courseRoutes

import (
	controllers "academy/controllers/course"
	"academy/middleware"
	"academy/progress"
	validators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRole(progress.RoleAdmin, progress.RoleSuperAdmin)

	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, adminOnly)

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Get("/list", validators.ListCourses(), controllers.AdminGetAllCourses)
	adminGroup.Put("/:id", validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Get("/:id", validators.CourseID(), controllers.AdminGetCourseDetails)
	adminGroup.Post("/:id/publish", validators.CourseID(), controllers.AdminPublishCourse)

	// Module Management
	adminGroup.Post("/:id/module", validators.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Get("/:id/modules", validators.CourseID(), controllers.AdminListModules)
	adminGroup.Put("/:course_id/module/:module_id", validators.UpdateModule(), controllers.AdminUpdateModule)
	adminGroup.Delete("/:course_id/module/:module_id", validators.DeleteModule(), controllers.AdminDeleteModule)

	// Quiz Management
	quizGroup := app.Group("/admin/module", middleware.JWTMiddleware, adminOnly)
	quizGroup.Post("/:module_id/quiz", validators.CreateQuiz(), controllers.AdminCreateQuiz)
	quizGroup.Get("/:module_id/quiz", validators.ModuleID(), controllers.AdminGetQuiz)
	quizGroup.Put("/:module_id/quiz", validators.UpdateQuiz(), controllers.AdminUpdateQuiz)
	quizGroup.Delete("/:module_id/quiz", validators.ModuleID(), controllers.AdminDeleteQuiz)
	quizGroup.Post("/:module_id/quiz/question", validators.AddQuestion(), controllers.AdminAddQuestion)

	questionGroup := app.Group("/admin/question", middleware.JWTMiddleware, adminOnly)
	questionGroup.Delete("/:question_id", validators.DeleteQuestion(), controllers.AdminDeleteQuestion)

	// Progress Tracking
	adminGroup.Get("/:id/progress", validators.CourseID(), controllers.AdminCourseProgressList)
	adminGroup.Get("/:id/completed", validators.CourseID(), controllers.AdminCompletedStudents)
	adminGroup.Get("/:course_id/student/:student_id/progress", validators.StudentProgress(), controllers.AdminStudentProgressDetails)

	// Deadlines
	deadlineGroup := app.Group("/admin/deadlines", middleware.JWTMiddleware, adminOnly)
	deadlineGroup.Get("/", controllers.AdminListDeadlines)
	adminGroup.Put("/:id/deadline", validators.SetDeadline(), controllers.AdminSetDeadline)
	adminGroup.Delete("/:id/deadline", validators.CourseID(), controllers.AdminRemoveDeadline)

	// Certificate Management
	certGroup := app.Group("/admin/certificates", middleware.JWTMiddleware, adminOnly)
	certGroup.Get("/pending", controllers.AdminPendingCertificates)
	certGroup.Post("/:certificate_id/approve", validators.CertificateID(), controllers.AdminApproveCertificate)
	certGroup.Post("/:certificate_id/reject", validators.RejectCertificate(), controllers.AdminRejectCertificate)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard", middleware.JWTMiddleware, adminOnly)
	dashGroup.Get("/stats", controllers.AdminDashboardStats)
}
