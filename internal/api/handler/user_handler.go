package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adminsync/portal-api/internal/core/domain"
	"github.com/adminsync/portal-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Name        string     `json:"name" validate:"required"`
	Email       string     `json:"email" validate:"required,email"`
	Password    string     `json:"password" validate:"required,min=6"`
	Role        string     `json:"role" validate:"omitempty,oneof=admin employee customer"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
}

type updateUserRequest struct {
	Name        string     `json:"name"`
	Email       string     `json:"email" validate:"omitempty,email"`
	Password    string     `json:"password" validate:"omitempty,min=6"`
	Role        string     `json:"role" validate:"omitempty,oneof=admin employee customer"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
}

// Add creates a user account. Role defaults to employee when omitted.
//
// @Summary      Add a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user details"
// @Success      201   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Router       /users/add [post]
func (h *UserHandler) Add(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := h.userService.AddUser(c.Request().Context(), ports.CreateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		DateOfBirth: req.DateOfBirth,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, Success(http.StatusCreated, "user added successfully", user))
}

// All lists every user.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Router       /users/all [get]
func (h *UserHandler) All(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Success(http.StatusOK, "users retrieved successfully", users))
}

// GetProfile returns a user's profile by id.
//
// @Summary      User profile by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /users/profile/{id} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Success(http.StatusOK, "user profile retrieved successfully", user))
}

// UpdateProfile updates a user's own profile (or any profile for admins).
// Role changes are only honoured for admin callers.
//
// @Summary      Update user profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /users/profile/{id} [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := identity(c)
	if err != nil {
		return err
	}
	return h.update(c, actor.Role)
}

// Edit updates any user record; admin only.
//
// @Summary      Edit a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      403   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /users/{id} [put]
func (h *UserHandler) Edit(c echo.Context) error {
	return h.update(c, domain.RoleAdmin)
}

func (h *UserHandler) update(c echo.Context, actorRole domain.Role) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		DateOfBirth: req.DateOfBirth,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}, actorRole)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Success(http.StatusOK, "user updated successfully", user))
}

// Delete removes a user; admin only.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  Envelope
// @Failure      403  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Success(http.StatusOK, "user removed successfully", nil))
}
