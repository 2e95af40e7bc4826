package authRoutes

import (
	authControllers "academy/controllers/auth"
	"academy/middleware"
	authValidators "academy/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.SignUp(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/login/history", middleware.JWTMiddleware, authValidators.LoginHistory(), authControllers.LoginHistoryList)
	authGroup.Post("/forgot/password/send/otp", authValidators.ForgotPassword(), authControllers.ForgotPasswordSendOTP)
	authGroup.Patch("/forgot/password/verify/otp", authValidators.VerifyOTP(), authControllers.ForgotPasswordVerifyOTP)
	authGroup.Patch("/reset/password", middleware.JWTMiddleware, authValidators.ResetPassword(), authControllers.ResetPassword)
	authGroup.Put("/change/login/password", middleware.JWTMiddleware, authValidators.ChangePassword(), authControllers.ChangeLoginPassword)
}
