package handlers

import (
	"errors"

	"userdirectory/internal/api/rest/middleware"
	"userdirectory/internal/dto"
	"userdirectory/internal/repository"
	"userdirectory/internal/services"
	"userdirectory/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// SetupRoutes mounts the directory endpoints. Everything under /api
// sits behind the API-key gate; nothing reaches a handler without a
// valid key.
func (h *UserHandler) SetupRoutes(app *fiber.App, apiKey string) {
	api := app.Group("/api", middleware.APIKeyAuth(apiKey))

	user := api.Group("/user")
	user.Get("/GetUsers", h.GetUsers)
	user.Get("/GetUserById/:id", h.GetUserByID)
	user.Post("/CreateUser", h.CreateUser)
}

// GetUsers godoc
// @Summary      List all users
// @Description  Returns every user with profile, role mappings, roles and permissions.
// @Tags         user
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Failure      401  {string}  string
// @Security     ApiKeyAuth
// @Router       /api/user/GetUsers [get]
func (h *UserHandler) GetUsers(ctx *fiber.Ctx) error {
	users, err := h.svc.GetUsers()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, users)
}

// GetUserByID godoc
// @Summary      Get one user by identifier
// @Description  Returns the fully hydrated user, or 404 when the identifier matches nothing.
// @Tags         user
// @Produce      json
// @Param        id   path      string  true  "user identifier (UUID string)"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.APIError
// @Failure      401  {string}  string
// @Security     ApiKeyAuth
// @Router       /api/user/GetUserById/{id} [get]
func (h *UserHandler) GetUserByID(ctx *fiber.Ctx) error {
	user, err := h.svc.GetUserByID(ctx.Params("id"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "user not found")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

// CreateUser godoc
// @Summary      Create a user
// @Description  Inserts the user with its attached profile and role mappings. The response body is the literal text "Duplicate user" or "Add new user success".
// @Tags         user
// @Accept       json
// @Produce      plain
// @Param        user  body      dto.CreateUserRequest  true  "user to create"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.APIError
// @Failure      401   {string}  string
// @Security     ApiKeyAuth
// @Router       /api/user/CreateUser [post]
func (h *UserHandler) CreateUser(ctx *fiber.Ctx) error {
	var requestBody dto.CreateUserRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	result, err := h.svc.CreateUser(requestBody)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	// Literal bodies kept for compatibility with the existing client,
	// which branches on the message text.
	if result.Duplicate {
		return ctx.Status(fiber.StatusOK).SendString("Duplicate user")
	}
	return ctx.Status(fiber.StatusOK).SendString("Add new user success")
}
