package userRoutes

import (
	userControllers "academy/controllers/users"
	"academy/middleware"
	"academy/progress"
	userValidators "academy/validators/users"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up account provisioning and management routes
func SetupUserRoutes(app *fiber.App) {
	adminOnly := middleware.RequireRole(progress.RoleAdmin, progress.RoleSuperAdmin)
	superAdminOnly := middleware.RequireRole(progress.RoleSuperAdmin)

	userGroup := app.Group("/admin/user", middleware.JWTMiddleware)

	userGroup.Post("/student", adminOnly, userValidators.CreateUser(), userControllers.AdminCreateStudent)
	userGroup.Post("/admin", superAdminOnly, userValidators.CreateUser(), userControllers.SuperAdminCreateAdmin)
	userGroup.Get("/list", adminOnly, userValidators.UserList(), userControllers.UserList)
	userGroup.Put("/:id/role", superAdminOnly, userValidators.UpdateRole(), userControllers.UpdateUserRole)
	userGroup.Delete("/:id", adminOnly, userValidators.DeleteUser(), userControllers.DeleteUser)
}
