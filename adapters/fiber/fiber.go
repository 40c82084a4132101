// Package fiber exposes the auth and content services over HTTP.
package fiber

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/knowtasks/knowtasks/core"
	"github.com/knowtasks/knowtasks/logging"
)

// AuthProvider provides authentication operations for the HTTP layer.
type AuthProvider interface {
	Register(ctx context.Context, input core.RegisterInput) (*core.RegisterResult, error)
	SignIn(ctx context.Context, input core.SignInInput) (*core.SignInResult, error)
	Session(ctx context.Context, claims *core.Claims) (*core.Principal, error)
	ChangePassword(ctx context.Context, principalID string, input core.ChangePasswordInput) error
	UpdateStatus(ctx context.Context, actor *core.Claims, id string, status core.Status) error
	ResetPassword(ctx context.Context, actor *core.Claims, id, newPassword string) error
	DeleteAccount(ctx context.Context, actor *core.Claims, id string) error
}

// ContentProvider provides content operations for the HTTP layer.
type ContentProvider interface {
	Create(ctx context.Context, owner *core.Claims, input core.CreateContentInput) (*core.CreateContentResult, error)
	Get(ctx context.Context, id string) (*core.ContentItem, error)
	DownloadURL(ctx context.Context, item *core.ContentItem) (string, error)
	List(ctx context.Context, filter core.ContentFilter) ([]*core.ContentItem, error)
	Update(ctx context.Context, actor *core.Claims, id string, input core.UpdateContentInput) (*core.ContentItem, error)
	Delete(ctx context.Context, actor *core.Claims, id string) error
}

type Adapter struct {
	auth    AuthProvider
	content ContentProvider
	tokens  core.TokenIssuer
	log     logging.Logger

	// devPrincipal, when non-nil, is the identity manufactured for
	// tokenless requests. Only ever set from explicit development
	// configuration; nil in any normal deployment.
	devPrincipal *core.Claims
}

func New(auth AuthProvider, content ContentProvider, tokens core.TokenIssuer, log logging.Logger) *Adapter {
	return &Adapter{auth: auth, content: content, tokens: tokens, log: log}
}

// EnableDevBypass turns on the development-only identity fallback.
func (a *Adapter) EnableDevBypass(claims *core.Claims) {
	a.devPrincipal = claims
}

// RegisterRoutes wires all endpoints onto the app under /api.
func (a *Adapter) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Public routes
	api.Post("/accounts", a.register)
	api.Post("/auth/sign-in", a.signIn)

	// Protected routes
	api.Get("/auth/session", a.requireAuth, a.session)
	api.Post("/auth/password", a.requireAuth, a.changePassword)

	// Superadmin routes
	api.Patch("/accounts/:id/status", a.requireAuth, a.requireRole(core.RoleSuperadmin), a.updateStatus)
	api.Post("/accounts/:id/password", a.requireAuth, a.requireRole(core.RoleSuperadmin), a.resetPassword)
	api.Delete("/accounts/:id", a.requireAuth, a.requireRole(core.RoleSuperadmin), a.deleteAccount)

	// Content routes
	api.Post("/content", a.requireAuth, a.createContent)
	api.Get("/content", a.requireAuth, a.listContent)
	api.Get("/content/:id", a.requireAuth, a.getContent)
	api.Put("/content/:id", a.requireAuth, a.updateContent)
	api.Delete("/content/:id", a.requireAuth, a.deleteContent)
}
