package courseRoutes

import (
	controllers "academy/controllers/course"
	"academy/middleware"
	validators "academy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.ListCourses(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Get("/:id/states", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseStates)

	// Progress record
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetProgress)
	courseGroup.Put("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.SaveProgress)

	// Video events
	courseGroup.Post("/:course_id/module/:module_id/video/complete", middleware.JWTMiddleware, validators.CourseModule(), controllers.VideoComplete)
	courseGroup.Post("/:course_id/module/:module_id/video/time", middleware.JWTMiddleware, validators.TimeUpdate(), controllers.VideoTimeUpdate)

	// Navigation
	courseGroup.Post("/:course_id/module/:module_id/select", middleware.JWTMiddleware, validators.CourseModule(), controllers.SelectModule)

	// Quiz sessions
	courseGroup.Post("/:course_id/module/:module_id/quiz/start", middleware.JWTMiddleware, validators.CourseModule(), controllers.StartQuiz)

	quizGroup := app.Group("/quiz")
	quizGroup.Get("/:session_id", middleware.JWTMiddleware, validators.SessionID(), controllers.QuizState)
	quizGroup.Post("/:session_id/select", middleware.JWTMiddleware, validators.QuizSelection(), controllers.QuizSelect)
	quizGroup.Post("/:session_id/submit", middleware.JWTMiddleware, validators.SessionID(), controllers.QuizSubmit)
	quizGroup.Post("/:session_id/advance", middleware.JWTMiddleware, validators.SessionID(), controllers.QuizAdvance)
	quizGroup.Post("/:session_id/retry", middleware.JWTMiddleware, validators.SessionID(), controllers.QuizRetry)

	// Certificates
	courseGroup.Post("/:id/certificate/request", middleware.JWTMiddleware, validators.CourseID(), controllers.RequestCertificate)

	userGroup := app.Group("/user")
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
