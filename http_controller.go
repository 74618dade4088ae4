package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

type Middleware interface {
	ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc
	MakeAuthErrorHandler(optional bool) func(router.Context, error) error
}

// GetRouterSession builds a session view from the claims the guard stored in
// router locals.
func GetRouterSession(c router.Context, key string) (*SessionObject, error) {
	claims, ok := GetRouterClaims(c, key)
	if !ok {
		return nil, ErrUnableToDecodeSession
	}

	return sessionFromAuthClaims(claims)
}

// RegisterAccountRoutes mounts the account lifecycle endpoints. Register,
// login, and logout are public; profile and deletion require a bearer token.
func RegisterAccountRoutes[T any](app router.Router[T], opts ...AccountControllerOption) {

	controller := NewAccountController(opts...)

	guard := controller.Auther.ProtectedRoute(
		controller.Config,
		controller.Auther.MakeAuthErrorHandler(false),
	)

	app.Post(controller.Routes.Register, controller.RegistrationCreate).
		SetName("register.post")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("sign-in.post")

	app.Post(controller.Routes.Logout, controller.LogOut).
		SetName("sign-out.post")

	app.Get(controller.Routes.Me, controller.ProfileShow, guard).
		SetName("me.get")

	app.Delete(controller.Routes.Delete, controller.AccountDelete, guard).
		SetName("account-delete.delete")
}

type AccountControllerRoutes struct {
	Login    string
	Logout   string
	Register string
	Me       string
	Delete   string
}

type AccountController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Routes       *AccountControllerRoutes
	Auther       HTTPAuthenticator
	Config       Config
	ErrorHandler router.ErrorHandler
}

type AccountControllerOption func(*AccountController) *AccountController

func NewAccountController(opts ...AccountControllerOption) *AccountController {
	c := &AccountController{
		Logger: defLogger{},
		Routes: &AccountControllerRoutes{
			Login:    "/login",
			Logout:   "/logout",
			Register: "/register",
			Me:       "/me",
			Delete:   "/delete",
		},
	}

	c.ErrorHandler = c.respondError

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in account controller...")
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in account controller...")
	}

	if c.Config == nil {
		panic("Missing Config in account controller...")
	}

	return c
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Email
}

// GetPassword will return the password
func (r LoginRequest) GetPassword() string {
	return r.Password
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AccountController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"message": "Failed to parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("login validate payload", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"message": err.Error(),
		})
	}

	token, err := a.Auther.Login(ctx, payload)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	user, err := a.Repo.Users().GetByEmail(ctx.Context(), payload.Email)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// LogOut is stateless on the server; the client discards the token
func (a *AccountController) LogOut(ctx router.Context) error {
	return ctx.JSON(fiber.StatusOK, map[string]any{
		"message": "Logout successful",
	})
}

// RegistrationCreatePayload is the registration body
type RegistrationCreatePayload struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will validate the payload
func (r RegistrationCreatePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
	)
}

func (a *AccountController) RegistrationCreate(ctx router.Context) error {
	payload := new(RegistrationCreatePayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register user parse payload", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"message": "Failed to parse request body",
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("register user validate payload", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"message": err.Error(),
		})
	}

	var record *User
	req := RegisterUserMessage{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
		OnResponse: func(u *User) {
			record = u
		},
	}

	registerUser := NewRegisterUserHandler(a.Repo)
	if err := registerUser.Execute(ctx.Context(), req); err != nil {
		a.Logger.Error("register user execute", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if record == nil {
		return a.ErrorHandler(ctx, ErrUserWriteFailed)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"message": "User registered successfully",
		"user":    record.Public(),
	})
}

func (a *AccountController) ProfileShow(ctx router.Context) error {
	session, err := GetRouterSession(ctx, a.Config.GetContextKey())
	if err != nil {
		a.Logger.Error("profile session", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	id, err := session.GetUserUUID()
	if err != nil {
		return a.ErrorHandler(ctx, ErrUnableToParseData)
	}

	user, err := a.Repo.Users().GetByUserID(ctx.Context(), id)
	if err != nil {
		a.Logger.Error("profile lookup", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"user": user.Public(),
	})
}

func (a *AccountController) AccountDelete(ctx router.Context) error {
	session, err := GetRouterSession(ctx, a.Config.GetContextKey())
	if err != nil {
		a.Logger.Error("delete session", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	id, err := session.GetUserUUID()
	if err != nil {
		return a.ErrorHandler(ctx, ErrUnableToParseData)
	}

	deleteAccount := NewDeleteAccountHandler(a.Repo)
	if err := deleteAccount.Execute(ctx.Context(), DeleteAccountMessage{UserID: id}); err != nil {
		a.Logger.Error("delete account execute", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"message": "Account deleted successfully",
	})
}

// respondError converts any error to its wire shape. Authorization failures
// are the only 401; every other business failure is a 400 with a message the
// client can show.
func (a *AccountController) respondError(ctx router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryInternal, "An unexpected error occurred")
	}

	status := fiber.StatusBadRequest
	if richErr.Category == goerrors.CategoryAuthz {
		status = fiber.StatusUnauthorized
	}

	return ctx.JSON(status, map[string]any{
		"message": richErr.Message,
	})
}
