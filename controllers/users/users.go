package userController

import (
	"log"

	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	"academy/progress"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// provisionUser creates an account with a generated temporary password and
// mails the credentials. Shared by student and admin provisioning.
func provisionUser(c *fiber.Ctx, name, email, role string, createdBy uint) error {
	var existing models.User
	if err := database.Database.Db.Where("email = ? AND is_deleted = ?", email, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already registered!", nil)
	}

	tempPassword := utils.GenerateTempPassword()
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(tempPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	user := models.User{
		Name:      name,
		Email:     email,
		Role:      role,
		Password:  string(hashedPassword),
		CreatedBy: createdBy,
	}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	go func() {
		if err := utils.SendTempPasswordEmail(email, name, tempPassword); err != nil {
			log.Printf("Error sending credentials email to %s: %v", email, err)
		}
	}()

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully!", fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// AdminCreateStudent provisions a student account owned by the calling
// admin. Ownership drives which students the admin can later see.
func AdminCreateStudent(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCreateUser").(*struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	return provisionUser(c, reqData.Name, reqData.Email, progress.RoleStudent, adminID)
}

// SuperAdminCreateAdmin provisions an admin account
func SuperAdminCreateAdmin(c *fiber.Ctx) error {
	superAdminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCreateUser").(*struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	return provisionUser(c, reqData.Name, reqData.Email, progress.RoleAdmin, superAdminID)
}

// UserList lists users visible to the caller with pagination. Admins see
// the students they created; super admins see everyone.
func UserList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	reqData, ok := c.Locals("validatedUserList").(*struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	query := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if role == progress.RoleAdmin {
		query = query.Where("role = ? AND created_by = ?", progress.RoleStudent, userID)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	offset := (reqData.Page - 1) * reqData.Limit
	if err := query.Order("id desc").Offset(offset).Limit(reqData.Limit).Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	type userOut struct {
		ID        uint   `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Role      string `json:"role"`
		CreatedBy uint   `json:"created_by"`
	}
	out := make([]userOut, len(users))
	for i, u := range users {
		out[i] = userOut{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedBy: u.CreatedBy}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": out,
		"pagination": fiber.Map{
			"page":  reqData.Page,
			"limit": reqData.Limit,
			"total": total,
		},
	})
}

// UpdateUserRole changes a user's role. Super admin only; the super admin
// role itself is never assignable through the API.
func UpdateUserRole(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(int)

	reqData, ok := c.Locals("validatedRoleUpdate").(*struct {
		Role string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Role != progress.RoleStudent && reqData.Role != progress.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Role must be STUDENT or ADMIN!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if user.Role == progress.RoleSuperAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Cannot change the role of a super admin!", nil)
	}

	user.Role = reqData.Role
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", fiber.Map{
		"id":   user.ID,
		"role": user.Role,
	})
}

// DeleteUser soft-deletes a user account. Admins may only delete students
// they created.
func DeleteUser(c *fiber.Ctx) error {
	callerID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	targetID := c.Locals("targetUserID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if user.Role == progress.RoleSuperAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Cannot delete a super admin!", nil)
	}
	if role == progress.RoleAdmin && (user.Role != progress.RoleStudent || user.CreatedBy != callerID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete students you created!", nil)
	}

	user.IsDeleted = true
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}
