package commerce

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DefaultPageSize is the page size used when a listing request does not
// provide one.
const DefaultPageSize = 100

type Products interface {
	repository.Repository[*Product]

	Create(ctx context.Context, record *Product, criteria ...repository.InsertCriteria) (*Product, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Product, criteria ...repository.InsertCriteria) (*Product, error)

	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*Product, error)
	GetOwnedTx(ctx context.Context, tx bun.IDB, id, ownerID uuid.UUID) (*Product, error)

	UpdateOwned(ctx context.Context, record *Product, ownerID uuid.UUID) (*Product, error)
	UpdateOwnedTx(ctx context.Context, tx bun.IDB, record *Product, ownerID uuid.UUID) (*Product, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
	DeleteOwnedTx(ctx context.Context, tx bun.IDB, id, ownerID uuid.UUID) error

	UpdateStatus(ctx context.Context, id uuid.UUID, status ProductStatus) (*Product, error)
	UpdateStatusTx(ctx context.Context, tx bun.IDB, id uuid.UUID, status ProductStatus) (*Product, error)
	Approve(ctx context.Context, actor ActorRef, product *Product, opts ...TransitionOption) (*Product, error)
	Disapprove(ctx context.Context, actor ActorRef, product *Product, opts ...TransitionOption) (*Product, error)

	ListByStatus(ctx context.Context, status ProductStatus, page Pagination) ([]*Product, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page Pagination) ([]*Product, int, error)
}

// Pagination carries 1-based page selection for listing queries.
type Pagination struct {
	Limit int
	Page  int
}

// Normalize clamps pagination to usable values.
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	return p
}

// Offset converts the 1-based page into a row offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type products struct {
	repository.Repository[*Product]
	db                  *bun.DB
	stateMachine        ApprovalStateMachine
	stateMachineOptions []StateMachineOption
}

var (
	_ Products                        = (*products)(nil)
	_ repository.Repository[*Product] = (*products)(nil)
)

type ProductsOption func(*products)

func NewProductsRepository(db *bun.DB, opts ...ProductsOption) Products {
	repo := repository.NewRepository[*Product](db, repository.ModelHandlers[*Product]{
		NewRecord: func() *Product { return &Product{} },
		GetID: func(p *Product) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Product, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
	})

	repoProducts := &products{
		Repository: repo,
		db:         db,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(repoProducts)
		}
	}

	return repoProducts
}

func WithProductsStateMachineOptions(options ...StateMachineOption) ProductsOption {
	return func(p *products) {
		if len(options) == 0 {
			return
		}
		p.stateMachineOptions = append(p.stateMachineOptions, options...)
		p.stateMachine = nil
	}
}

func WithProductsStateMachine(sm ApprovalStateMachine) ProductsOption {
	return func(p *products) {
		p.stateMachine = sm
	}
}

func (a *products) Create(ctx context.Context, record *Product, criteria ...repository.InsertCriteria) (*Product, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

// CreateTx inserts a product. The approval status is always forced to
// pending, regardless of what the record carries.
func (a *products) CreateTx(ctx context.Context, tx bun.IDB, record *Product, criteria ...repository.InsertCriteria) (*Product, error) {
	prepareProductDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (a *products) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*Product, error) {
	return a.GetOwnedTx(ctx, a.db, id, ownerID)
}

// GetOwnedTx scopes the lookup by creator, so a product owned by someone
// else is indistinguishable from one that does not exist.
func (a *products) GetOwnedTx(ctx context.Context, tx bun.IDB, id, ownerID uuid.UUID) (*Product, error) {
	record := &Product{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.created_by = ?", ownerID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (a *products) UpdateOwned(ctx context.Context, record *Product, ownerID uuid.UUID) (*Product, error) {
	return a.UpdateOwnedTx(ctx, a.db, record, ownerID)
}

func (a *products) UpdateOwnedTx(ctx context.Context, tx bun.IDB, record *Product, ownerID uuid.UUID) (*Product, error) {
	existing, err := a.GetOwnedTx(ctx, tx, record.ID, ownerID)
	if err != nil {
		return nil, err
	}

	record.CreatedBy = existing.CreatedBy
	record.Status = existing.Status

	return a.Repository.UpdateTx(ctx, tx, record, repository.UpdateByID(record.ID.String()))
}

func (a *products) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	return a.DeleteOwnedTx(ctx, a.db, id, ownerID)
}

func (a *products) DeleteOwnedTx(ctx context.Context, tx bun.IDB, id, ownerID uuid.UUID) error {
	if _, err := a.GetOwnedTx(ctx, tx, id, ownerID); err != nil {
		return err
	}

	_, err := tx.NewDelete().
		Model((*Product)(nil)).
		Where("id = ?", id).
		Where("created_by = ?", ownerID).
		Exec(ctx)
	return err
}

func (a *products) UpdateStatus(ctx context.Context, id uuid.UUID, status ProductStatus) (*Product, error) {
	return a.UpdateStatusTx(ctx, a.db, id, status)
}

func (a *products) UpdateStatusTx(ctx context.Context, tx bun.IDB, id uuid.UUID, status ProductStatus) (*Product, error) {
	record := &Product{
		ID:     id,
		Status: status,
	}

	return a.Repository.UpdateTx(ctx, tx, record, repository.UpdateByID(id.String()))
}

func (a *products) Approve(ctx context.Context, actor ActorRef, product *Product, opts ...TransitionOption) (*Product, error) {
	return a.approvalMachine().Transition(ctx, actor, product, ProductStatusApproved, opts...)
}

func (a *products) Disapprove(ctx context.Context, actor ActorRef, product *Product, opts ...TransitionOption) (*Product, error) {
	return a.approvalMachine().Transition(ctx, actor, product, ProductStatusDisapproved, opts...)
}

func (a *products) ListByStatus(ctx context.Context, status ProductStatus, page Pagination) ([]*Product, int, error) {
	page = page.Normalize()

	var records []*Product
	q := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.status = ?", status).
		OrderExpr("?TableAlias.created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset())

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (a *products) ListByOwner(ctx context.Context, ownerID uuid.UUID, page Pagination) ([]*Product, int, error) {
	page = page.Normalize()

	var records []*Product
	q := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.created_by = ?", ownerID).
		OrderExpr("?TableAlias.created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset())

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func prepareProductDefaults(record *Product) {
	if record == nil {
		return
	}

	record.Status = ProductStatusPending
	record.Currency = ParseCurrency(record.Currency)

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func (a *products) approvalMachine() ApprovalStateMachine {
	if a.stateMachine == nil {
		a.stateMachine = NewApprovalStateMachine(a, a.stateMachineOptions...)
	}
	return a.stateMachine
}
