package credentials

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RegisterAuthRoutes mounts the credential endpoints on app. The profile and
// dashboard routes go through the bearer-token middleware built from cfg, the
// dashboard additionally requires the admin role.
func RegisterAuthRoutes[T any](app router.Router[T], cfg Config, opts ...AuthControllerOption) {

	controller := NewAuthController(opts...)

	protected := ProtectedRoute(cfg, controller.Tokens, controller.ErrorHandler)
	adminOnly := RoleProtectedRoute(cfg, controller.Tokens, RoleAdmin, controller.ErrorHandler)

	app.Post(controller.Routes.Register, controller.RegisterPost).
		SetName("register.post")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("sign-in.post")

	app.Get(controller.Routes.Profile, controller.ProfileShow, protected).
		SetName("profile.get")

	app.Get(controller.Routes.AdminDashboard, controller.AdminDashboard, adminOnly).
		SetName("admin-dashboard.get")

	app.Get(controller.Routes.GuestContent, controller.GuestContent).
		SetName("guest-content.get")
}

type AuthControllerRoutes struct {
	Register       string
	Login          string
	Profile        string
	AdminDashboard string
	GuestContent   string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Service      *CredentialService
	Tokens       TokenService
	Routes       *AuthControllerRoutes
	ContextKey   string
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerService(service *CredentialService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Service = service
		return c
	}
}

func WithControllerTokens(tokens TokenService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Tokens = tokens
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithControllerContextKey(key string) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.ContextKey = key
		return c
	}
}

func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: JSONErrorHandler,
		ContextKey:   DefaultContextKey,
		Routes: &AuthControllerRoutes{
			Register:       "/api/register",
			Login:          "/api/login",
			Profile:        "/api/profile",
			AdminDashboard: "/api/admin/dashboard",
			GuestContent:   "/api/content/guest",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Service == nil {
		panic("Missing CredentialService in auth controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in auth controller...")
	}

	return c
}

// RegisterRequest payload
type RegisterRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 200)),
	)
}

func (a *AuthController) RegisterPost(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload: ", "error", err)
		return a.ErrorHandler(ctx, ErrInvalidInput)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register validate payload: ", "error", err)
		return a.ErrorHandler(ctx, ErrInvalidInput.Clone().WithMetadata(map[string]any{
			"validation": err.Error(),
		}))
	}

	if a.Debug {
		fmt.Println("======= AUTH REGISTER ======")
		fmt.Println(print.MaybePrettyJSON(map[string]any{"username": payload.Username}))
		fmt.Println("============================")
	}

	profile, err := a.Service.Register(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		a.Logger.Error("register user: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusCreated, profile)
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the signed session token and the public profile of
// the authenticated user.
type LoginResponse struct {
	Token string         `json:"token"`
	User  *PublicProfile `json:"user"`
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: ", "error", err)
		return a.ErrorHandler(ctx, ErrInvalidInput)
	}

	if err := payload.Validate(); err != nil {
		return a.ErrorHandler(ctx, ErrInvalidCredentials)
	}

	token, profile, err := a.Service.Login(ctx.Context(), payload.Username, payload.Password)
	if err != nil {
		a.Logger.Error("login user: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, LoginResponse{
		Token: token,
		User:  profile,
	})
}

func (a *AuthController) ProfileShow(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, a.ContextKey)
	if !ok {
		return a.ErrorHandler(ctx, ErrMissingToken)
	}

	return ctx.JSON(fiber.StatusOK, router.ViewContext{
		"message": fmt.Sprintf("Welcome %s", claims.Username()),
		"user": router.ViewContext{
			"username": claims.Username(),
			"role":     claims.Role(),
		},
	})
}

func (a *AuthController) AdminDashboard(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, a.ContextKey)
	if !ok {
		return a.ErrorHandler(ctx, ErrMissingToken)
	}

	return ctx.JSON(fiber.StatusOK, router.ViewContext{
		"message": "Admin dashboard",
		"user": router.ViewContext{
			"username": claims.Username(),
			"role":     claims.Role(),
		},
	})
}

func (a *AuthController) GuestContent(ctx router.Context) error {
	return ctx.JSON(fiber.StatusOK, router.ViewContext{
		"message": "Public content, no session required",
	})
}
