package commerce

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RouteRegistrar captures the router methods used by the controllers.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Patch(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// UserController handles account HTTP routes.
type UserController struct {
	Logger     Logger
	Repo       RepositoryManager
	Auther     *Auther
	ContextKey string
}

type UserControllerOption func(*UserController) *UserController

func WithUserControllerLogger(l Logger) UserControllerOption {
	return func(c *UserController) *UserController {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

func NewUserController(repo RepositoryManager, auther *Auther, contextKey string, opts ...UserControllerOption) *UserController {
	c := &UserController{
		Logger:     defLogger{},
		Repo:       repo,
		Auther:     auther,
		ContextKey: contextKey,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in user controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in user controller...")
	}

	return c
}

// RegisterRoutes registers account routes. Sign up and sign in are public;
// status moderation is admin only.
func (c *UserController) RegisterRoutes(group RouteRegistrar) {
	group.Post("/sign-up", c.SignUp)
	group.Post("/sign-in", c.SignIn)
	group.Patch("/:id/status", c.UpdateStatus, RequiresAdminRole(c.ContextKey))
}

// SignUpPayload is the registration payload. Roles are not accepted from
// the client; every self-registered account starts as a regular user.
type SignUpPayload struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r SignUpPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

func (c *UserController) SignUp(ctx router.Context) error {
	payload := new(SignUpPayload)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("sign up parse payload", "error", err)
		return RespondError(ctx, c.Logger, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		c.Logger.Error("sign up validate payload", "error", err)
		return RespondError(ctx, c.Logger, WrapValidationError(err))
	}

	registerUser := NewRegisterUserHandler(c.Repo)
	user, err := registerUser.Execute(ctx.Context(), RegisterUserMessage{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		c.Logger.Error("sign up register user", "error", err)
		return RespondError(ctx, c.Logger, err)
	}

	return RespondData(ctx, router.StatusCreated, user, "user registered successfully")
}

// SignInPayload is the credentials payload
type SignInPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r SignInPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// SignInUser is the public view of the authenticated account
type SignInUser struct {
	ID            string        `json:"id"`
	Email         string        `json:"email"`
	Role          string        `json:"role"`
	AccountStatus AccountStatus `json:"account_status"`
}

// SignInResponse pairs the authenticated account with its token pair
type SignInResponse struct {
	User         SignInUser `json:"user"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
}

func (c *UserController) SignIn(ctx router.Context) error {
	payload := new(SignInPayload)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("sign in parse payload", "error", err)
		return RespondError(ctx, c.Logger, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		c.Logger.Error("sign in validate payload", "error", err)
		return RespondError(ctx, c.Logger, WrapValidationError(err))
	}

	tokens, identity, err := c.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return RespondError(ctx, c.Logger, err)
	}

	return RespondData(ctx, router.StatusOK, &SignInResponse{
		User: SignInUser{
			ID:            identity.ID(),
			Email:         identity.Email(),
			Role:          identity.Role(),
			AccountStatus: identity.Status(),
		},
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "sign in successful")
}

// UpdateStatusPayload is the account moderation payload
type UpdateStatusPayload struct {
	Status string `form:"status" json:"status"`
	Reason string `form:"reason" json:"reason"`
}

// Validate will run validation rules
func (r UpdateStatusPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(AccountStatusActive, AccountStatusSuspended)),
		validation.Field(&r.Reason, validation.Length(0, 500)),
	)
}

// UpdateStatus suspends or reinstates an account. Tokens minted before the
// change keep their issue-time status until they expire.
func (c *UserController) UpdateStatus(ctx router.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return RespondError(ctx, c.Logger, ErrUserNotFound)
	}

	payload := new(UpdateStatusPayload)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("update status parse payload", "error", err)
		return RespondError(ctx, c.Logger, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		c.Logger.Error("update status validate payload", "error", err)
		return RespondError(ctx, c.Logger, WrapValidationError(err))
	}

	user, err := c.Repo.Users().GetByID(ctx.Context(), id.String())
	if err != nil {
		if goerrors.IsNotFound(err) {
			return RespondError(ctx, c.Logger, ErrUserNotFound)
		}
		return RespondError(ctx, c.Logger, err)
	}

	actor := c.actorFromContext(ctx)
	opts := []TransitionOption{}
	if payload.Reason != "" {
		opts = append(opts, WithTransitionReason(payload.Reason))
	}

	switch payload.Status {
	case AccountStatusSuspended:
		user, err = c.Repo.Users().Suspend(ctx.Context(), actor, user, opts...)
	case AccountStatusActive:
		user, err = c.Repo.Users().Reinstate(ctx.Context(), actor, user, opts...)
	}
	if err != nil {
		return RespondError(ctx, c.Logger, err)
	}

	return RespondData(ctx, router.StatusOK, user, "account status updated")
}

func (c *UserController) actorFromContext(ctx router.Context) ActorRef {
	claims, ok := GetRouterClaims(ctx, c.ContextKey)
	if !ok {
		return ActorRef{Type: "system"}
	}
	return ActorRef{ID: claims.UserID(), Type: "user"}
}
