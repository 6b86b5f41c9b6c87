package commerce

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// ProductController handles catalog HTTP routes.
type ProductController struct {
	Logger     Logger
	Repo       RepositoryManager
	ContextKey string
}

type ProductControllerOption func(*ProductController) *ProductController

func WithProductControllerLogger(l Logger) ProductControllerOption {
	return func(c *ProductController) *ProductController {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

func NewProductController(repo RepositoryManager, contextKey string, opts ...ProductControllerOption) *ProductController {
	c := &ProductController{
		Logger:     defLogger{},
		Repo:       repo,
		ContextKey: contextKey,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in product controller...")
	}

	return c
}

// RegisterRoutes registers catalog routes. The public listing only ever
// serves approved products; everything else requires an identity, and
// approval decisions require the admin role.
func (c *ProductController) RegisterRoutes(group RouteRegistrar) {
	group.Get("/view-all", c.ViewAll)
	group.Post("/", c.Create, RequiresIdentity(c.ContextKey))
	group.Patch("/:id/approval", c.UpdateApproval, RequiresAdminRole(c.ContextKey))
	group.Patch("/:id", c.Update, RequiresIdentity(c.ContextKey))
	group.Delete("/:id", c.Delete, RequiresIdentity(c.ContextKey))
}

// CreateProductPayload is the product creation payload. Approval status is
// not accepted from the client; new products always start pending.
type CreateProductPayload struct {
	Name        string `form:"name" json:"name"`
	Price       int64  `form:"price" json:"price"`
	Quantity    int    `form:"quantity" json:"quantity"`
	Description string `form:"description" json:"description"`
	Currency    string `form:"currency" json:"currency"`
}

// Validate will run validation rules
func (r CreateProductPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Price, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Currency, validation.In(CurrencyNGN, CurrencyUSD, CurrencyEUR, CurrencyGBP)),
	)
}

func (c *ProductController) Create(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, c.ContextKey)
	if !ok {
		return RespondError(ctx, c.Logger, ErrUnauthenticated)
	}

	ownerID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return RespondError(ctx, c.Logger, ErrUnauthenticated)
	}

	payload := new(CreateProductPayload)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("create product parse payload", "error", err)
		return RespondError(ctx, c.Logger, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		c.Logger.Error("create product validate payload", "error", err)
		return RespondError(ctx, c.Logger, WrapValidationError(err))
	}

	record := &Product{
		Name:        payload.Name,
		Price:       payload.Price,
		Quantity:    payload.Quantity,
		Description: payload.Description,
		Currency:    payload.Currency,
		CreatedBy:   ownerID,
	}

	record, err = c.Repo.Products().Create(ctx.Context(), record)
	if err != nil {
		c.Logger.Error("create product", "error", err)
		return RespondError(ctx, c.Logger, err)
	}

	return RespondData(ctx, router.StatusCreated, record, "product created and pending approval")
}

// UpdateProductPayload carries editable product fields. Zero values are
// skipped so callers can patch a subset.
type UpdateProductPayload struct {
	Name        string `form:"name" json:"name"`
	Price       int64  `form:"price" json:"price"`
	Quantity    int    `form:"quantity" json:"quantity"`
	Description string `form:"description" json:"description"`
	Currency    string `form:"currency" json:"currency"`
}

// Validate will run validation rules
func (r UpdateProductPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(1, 200)),
		validation.Field(&r.Price, validation.Min(int64(0))),
		validation.Field(&r.Quantity, validation.Min(0)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
		validation.Field(&r.Currency, validation.In(CurrencyNGN, CurrencyUSD, CurrencyEUR, CurrencyGBP)),
	)
}

// Update modifies a product the caller owns. Products owned by someone
// else respond as not found rather than forbidden.
func (c *ProductController) Update(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, c.ContextKey)
	if !ok {
		return RespondError(ctx, c.Logger, ErrUnauthenticated)
	}

	ownerID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return RespondError(ctx, c.Logger, ErrUnauthenticated)
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return RespondError(ctx, c.Logger, ErrProductNotFound)
	}

	payload := new(UpdateProductPayload)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("update product parse payload", "error", err)
		return RespondError(ctx, c.Logger, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		c.Logger.Error("update product validate payload", "error", err)
		return RespondError(ctx, c.Logger, WrapValidationError(err))
	}

	record, err := c.Repo.Products().GetOwned(ctx.Context(), id, ownerID)
	if err != nil {
		return RespondError(ctx, c.Logger, c.notFoundOr(err))
	}

	applyProductPatch(record, payload)

	record, err = c.Repo.Products().UpdateOwned(ctx.Context(), record, ownerID)
	if err != nil {
		return RespondError(ctx, c.Logger, c.notFoundOr(err))
	}

	return RespondData(ctx, router.StatusOK, record, "product updated")
}

// Delete removes a product the caller owns.
func (c *ProductController) Delete(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, c.ContextKey)
	if !ok {
		return RespondError(ctx, c.Logger, ErrUnauthenticated)
	}

	ownerID, err := uuid.Parse(claims.UserID())
	if err != nil {
		return RespondError(ctx, c.Logger, ErrUnauthenticated)
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return RespondError(ctx, c.Logger, ErrProductNotFound)
	}

	if err := c.Repo.Products().DeleteOwned(ctx.Context(), id, ownerID); err != nil {
		return RespondError(ctx, c.Logger, c.notFoundOr(err))
	}

	return RespondData(ctx, router.StatusOK, nil, "product deleted")
}

// ApprovalPayload is the moderation decision payload
type ApprovalPayload struct {
	Status string `form:"status" json:"status"`
	Reason string `form:"reason" json:"reason"`
}

// Validate will run validation rules
func (r ApprovalPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(ProductStatusApproved, ProductStatusDisapproved)),
		validation.Field(&r.Reason, validation.Length(0, 500)),
	)
}

// UpdateApproval approves or disapproves a product. Admin only; ownership
// does not matter here.
func (c *ProductController) UpdateApproval(ctx router.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return RespondError(ctx, c.Logger, ErrProductNotFound)
	}

	payload := new(ApprovalPayload)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("update approval parse payload", "error", err)
		return RespondError(ctx, c.Logger, goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to parse request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		c.Logger.Error("update approval validate payload", "error", err)
		return RespondError(ctx, c.Logger, WrapValidationError(err))
	}

	record, err := c.Repo.Products().GetByID(ctx.Context(), id.String())
	if err != nil {
		return RespondError(ctx, c.Logger, c.notFoundOr(err))
	}

	actor := c.actorFromContext(ctx)
	opts := []TransitionOption{}
	if payload.Reason != "" {
		opts = append(opts, WithTransitionReason(payload.Reason))
	}

	switch payload.Status {
	case ProductStatusApproved:
		record, err = c.Repo.Products().Approve(ctx.Context(), actor, record, opts...)
	case ProductStatusDisapproved:
		record, err = c.Repo.Products().Disapprove(ctx.Context(), actor, record, opts...)
	}
	if err != nil {
		return RespondError(ctx, c.Logger, err)
	}

	return RespondData(ctx, router.StatusOK, record, "product approval updated")
}

// ViewAll lists approved products with pagination. No identity required.
func (c *ProductController) ViewAll(ctx router.Context) error {
	page := Pagination{
		Limit: queryInt(ctx, "limit", DefaultPageSize),
		Page:  queryInt(ctx, "page", 1),
	}

	records, total, err := c.Repo.Products().ListByStatus(ctx.Context(), ProductStatusApproved, page)
	if err != nil {
		c.Logger.Error("view all products", "error", err)
		return RespondError(ctx, c.Logger, err)
	}

	page = page.Normalize()
	return RespondData(ctx, router.StatusOK, map[string]any{
		"items": records,
		"total": total,
		"limit": page.Limit,
		"page":  page.Page,
	}, "products retrieved")
}

func (c *ProductController) actorFromContext(ctx router.Context) ActorRef {
	claims, ok := GetRouterClaims(ctx, c.ContextKey)
	if !ok {
		return ActorRef{Type: "system"}
	}
	return ActorRef{ID: claims.UserID(), Type: "user"}
}

func (c *ProductController) notFoundOr(err error) error {
	if goerrors.IsNotFound(err) || repository.IsRecordNotFound(err) {
		return ErrProductNotFound
	}
	return err
}

func applyProductPatch(record *Product, payload *UpdateProductPayload) {
	if payload.Name != "" {
		record.Name = payload.Name
	}
	if payload.Price > 0 {
		record.Price = payload.Price
	}
	if payload.Quantity > 0 {
		record.Quantity = payload.Quantity
	}
	if payload.Description != "" {
		record.Description = payload.Description
	}
	if payload.Currency != "" {
		record.Currency = payload.Currency
	}
}

func queryInt(ctx router.Context, key string, def int) int {
	raw := ctx.Query(key, "")
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
