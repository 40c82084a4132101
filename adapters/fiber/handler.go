package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/knowtasks/knowtasks/core"
)

// errorResponse is the uniform JSON failure body. Every failure path
// returns well-formed JSON; clients never see an empty body.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func errorBody(err error) errorResponse {
	return errorResponse{Success: false, Message: err.Error()}
}

// handleError maps service errors to HTTP responses. Unexpected errors are
// logged with full detail server-side and surfaced as a generic message.
func (a *Adapter) handleError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		a.log.Error(c.Context(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(status).JSON(errorResponse{Success: false, Message: "internal server error"})
	}
	return c.Status(status).JSON(errorBody(err))
}

// mapErrorToStatus maps the error taxonomy to HTTP status codes.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrInvalidToken),
		errors.Is(err, core.ErrTokenExpired),
		errors.Is(err, core.ErrMissingAuthHeader),
		errors.Is(err, core.ErrInvalidAuthHeader):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrAccountPending),
		errors.Is(err, core.ErrAccountInactive),
		errors.Is(err, core.ErrForbidden),
		errors.Is(err, core.ErrNotOwner):
		return http.StatusForbidden

	case errors.Is(err, core.ErrDuplicateEmail):
		return http.StatusConflict

	case errors.Is(err, core.ErrPrincipalNotFound),
		errors.Is(err, core.ErrContentNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrTooManyAttempts):
		return http.StatusTooManyRequests

	case errors.Is(err, core.ErrEmailRequired),
		errors.Is(err, core.ErrInvalidEmail),
		errors.Is(err, core.ErrPasswordRequired),
		errors.Is(err, core.ErrPasswordTooShort),
		errors.Is(err, core.ErrPasswordTooLong),
		errors.Is(err, core.ErrNameRequired),
		errors.Is(err, core.ErrTitleRequired),
		errors.Is(err, core.ErrSubjectRequired),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrInvalidStatus):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func (a *Adapter) register(c fiber.Ctx) error {
	var input core.RegisterInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Success: false, Message: "invalid request body"})
	}

	result, err := a.auth.Register(c.Context(), input)
	if err != nil {
		return a.handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"principal": result.Principal,
	})
}

func (a *Adapter) signIn(c fiber.Ctx) error {
	var input core.SignInInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Success: false, Message: "invalid request body"})
	}
	input.ClientIP = c.IP()

	result, err := a.auth.SignIn(c.Context(), input)
	if err != nil {
		return a.handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":   true,
		"principal": result.Principal,
		"token":     result.Token,
	})
}

func (a *Adapter) session(c fiber.Ctx) error {
	identity := currentIdentity(c)

	principal, err := a.auth.Session(c.Context(), identity.Claims)
	if err != nil {
		return a.handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":   true,
		"principal": principal,
	})
}

func (a *Adapter) changePassword(c fiber.Ctx) error {
	identity := currentIdentity(c)

	var input core.ChangePasswordInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Success: false, Message: "invalid request body"})
	}

	if err := a.auth.ChangePassword(c.Context(), identity.Claims.PrincipalID, input); err != nil {
		return a.handleError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

func (a *Adapter) updateStatus(c fiber.Ctx) error {
	identity := currentIdentity(c)

	var input struct {
		Status core.Status `json:"status"`
	}
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Success: false, Message: "invalid request body"})
	}

	if err := a.auth.UpdateStatus(c.Context(), identity.Claims, c.Params("id"), input.Status); err != nil {
		return a.handleError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

func (a *Adapter) deleteAccount(c fiber.Ctx) error {
	identity := currentIdentity(c)

	if err := a.auth.DeleteAccount(c.Context(), identity.Claims, c.Params("id")); err != nil {
		return a.handleError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

func (a *Adapter) resetPassword(c fiber.Ctx) error {
	identity := currentIdentity(c)

	var input struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Success: false, Message: "invalid request body"})
	}

	if err := a.auth.ResetPassword(c.Context(), identity.Claims, c.Params("id"), input.NewPassword); err != nil {
		return a.handleError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}
