package controllers

import (
	"errors"
	"io"
	"net/http"

	"sk-barangay-service/internal/app/middleware"
	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceUserController defines the account endpoints
type InterfaceUserController interface {
	GetUsers()
	GetUser()
	CreateAccount()
	UpdateUser()
	DeleteUser()
	ResetPassword()
	ChangePassword()
	UploadProfilePicture()
	DeleteProfilePicture()
}

// UserController handles account requests
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// ResetPasswordRequest optionally names the new password
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ChangePasswordRequest rotates the caller's own password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// NewUserController creates a user controller
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

func (c *UserController) service() services.InterfaceUserService {
	return c.Container.GetService("user").(services.InterfaceUserService)
}

// GetUsers lists all accounts
func (c *UserController) GetUsers() {
	users, err := c.service().GetAllUsers(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching users")
		return
	}
	response.Success(c.Ctx, "", gin.H{"users": users})
}

// GetUser returns one account
func (c *UserController) GetUser() {
	id, ok := paramID(c.Ctx, "id", "user")
	if !ok {
		return
	}
	user, err := c.service().GetUserByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err, "Server error fetching user")
		return
	}
	response.Success(c.Ctx, "", gin.H{"user": user})
}

// CreateAccount creates an account and emails its temporary password
func (c *UserController) CreateAccount() {
	var in services.CreateAccountInput
	if !bindJSON(c.Ctx, &in) {
		return
	}
	user, err := c.service().CreateAccount(c.Ctx.Request.Context(), in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error during account creation")
		return
	}
	response.Created(c.Ctx, "Account created successfully", gin.H{"userId": user.ID})
}

// UpdateUser applies a partial account update; position and status are admin-only
func (c *UserController) UpdateUser() {
	id, ok := paramID(c.Ctx, "id", "user")
	if !ok {
		return
	}
	var in services.UserUpdate
	if !bindJSON(c.Ctx, &in) {
		return
	}
	if (in.Position != nil || in.Status != nil) && c.Ctx.GetString(middleware.ContextPosition) != models.PositionAdmin {
		response.FailWithMessage(c.Ctx, code.ErrForbidden, "Only admins can change position or status")
		return
	}
	user, err := c.service().UpdateUser(c.Ctx.Request.Context(), id, in)
	if err != nil {
		response.Error(c.Ctx, err, "Server error updating user")
		return
	}
	response.Success(c.Ctx, "User updated successfully", gin.H{"user": user})
}

// DeleteUser removes an account other than the caller's own
func (c *UserController) DeleteUser() {
	id, ok := paramID(c.Ctx, "id", "user")
	if !ok {
		return
	}
	if id == actorID(c.Ctx) {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "You cannot delete your own account")
		return
	}
	if err := c.service().DeleteUser(c.Ctx.Request.Context(), id); err != nil {
		response.Error(c.Ctx, err, "Server error deleting user")
		return
	}
	response.Success(c.Ctx, "User deleted successfully", nil)
}

// ResetPassword sets a temporary password, random unless one is supplied
func (c *UserController) ResetPassword() {
	id, ok := paramID(c.Ctx, "id", "user")
	if !ok {
		return
	}
	var req ResetPasswordRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ParamError(c.Ctx, bindMessage(err))
		return
	}
	if err := c.service().ResetPassword(c.Ctx.Request.Context(), id, req.NewPassword); err != nil {
		response.Error(c.Ctx, err, "Server error resetting password")
		return
	}
	response.Success(c.Ctx, "Password reset successfully", nil)
}

// ChangePassword rotates the caller's password and returns a fresh token
func (c *UserController) ChangePassword() {
	id, ok := paramID(c.Ctx, "id", "user")
	if !ok {
		return
	}
	if id != actorID(c.Ctx) {
		response.FailWithMessage(c.Ctx, code.ErrForbidden, "You can only change your own password")
		return
	}
	var req ChangePasswordRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	user, err := c.service().ChangePassword(c.Ctx.Request.Context(), id, req.CurrentPassword, req.NewPassword)
	if err != nil {
		response.Error(c.Ctx, err, "Server error changing password")
		return
	}
	token, err := c.Container.GetService("jwt").(services.InterfaceJWTService).GenerateToken(user)
	if err != nil {
		response.Error(c.Ctx, err, "Server error changing password")
		return
	}
	response.Success(c.Ctx, "Password changed successfully", gin.H{
		"token": token,
		"user":  user,
	})
}

// UploadProfilePicture replaces the account picture
func (c *UserController) UploadProfilePicture() {
	id, ok := paramID(c.Ctx, "id", "user")
	if !ok {
		return
	}
	fh, err := c.Ctx.FormFile("profile_picture")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		response.ParamError(c.Ctx, "Invalid upload")
		return
	}
	user, err := c.service().UpdateProfilePicture(c.Ctx.Request.Context(), id, fh)
	if err != nil {
		response.Error(c.Ctx, err, "Server error uploading profile picture")
		return
	}
	response.Success(c.Ctx, "Profile picture updated successfully", gin.H{"user": user})
}

// DeleteProfilePicture clears the account picture
func (c *UserController) DeleteProfilePicture() {
	id, ok := paramID(c.Ctx, "id", "user")
	if !ok {
		return
	}
	user, err := c.service().DeleteProfilePicture(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err, "Server error deleting profile picture")
		return
	}
	response.Success(c.Ctx, "Profile picture removed successfully", gin.H{"user": user})
}

// HandleUserFunc returns a gin handler for the user controller
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "createAccount":
			controller.CreateAccount()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		case "resetPassword":
			controller.ResetPassword()
		case "changePassword":
			controller.ChangePassword()
		case "uploadProfilePicture":
			controller.UploadProfilePicture()
		case "deleteProfilePicture":
			controller.DeleteProfilePicture()
		default:
			unknownMethod(ctx)
		}
	}
}
