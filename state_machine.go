package commerce

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidAccountTransition = "INVALID_ACCOUNT_STATE_TRANSITION"
	textCodeInvalidProductTransition = "INVALID_PRODUCT_STATE_TRANSITION"
)

// ErrInvalidAccountTransition is returned when a requested account status change is not allowed.
var ErrInvalidAccountTransition = goerrors.New("invalid account state transition", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidAccountTransition).
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidProductTransition is returned when a requested approval status change is not allowed.
var ErrInvalidProductTransition = goerrors.New("invalid product state transition", goerrors.CategoryValidation).
	WithTextCode(textCodeInvalidProductTransition).
	WithCode(goerrors.CodeBadRequest)

// ActorRef identifies who/what triggered a transition.
type ActorRef struct {
	ID   string
	Type string
}

// TransitionMetadata captures extra context for a transition.
type TransitionMetadata struct {
	Reason   string
	Metadata map[string]any
}

// TransitionOption customizes a single transition.
type TransitionOption func(*transitionOptions)

// AccountStateMachine defines lifecycle operations for user accounts.
type AccountStateMachine interface {
	Transition(ctx context.Context, actor ActorRef, user *User, target AccountStatus, opts ...TransitionOption) (*User, error)
	CurrentStatus(user *User) AccountStatus
}

// ApprovalStateMachine defines lifecycle operations for catalog products.
type ApprovalStateMachine interface {
	Transition(ctx context.Context, actor ActorRef, product *Product, target ProductStatus, opts ...TransitionOption) (*Product, error)
	CurrentStatus(product *Product) ProductStatus
}

// StateMachineOption customizes state machine construction.
type StateMachineOption func(*machineConfig)

type machineConfig struct {
	now    func() time.Time
	logger Logger
}

// WithStateMachineClock injects a custom clock (useful for tests).
func WithStateMachineClock(clock func() time.Time) StateMachineOption {
	return func(cfg *machineConfig) {
		if clock != nil {
			cfg.now = clock
		}
	}
}

// WithStateMachineLogger overrides the logger used for transition logging.
func WithStateMachineLogger(logger Logger) StateMachineOption {
	return func(cfg *machineConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithTransitionReason sets the human-readable reason for the transition.
func WithTransitionReason(reason string) TransitionOption {
	return func(opts *transitionOptions) {
		opts.metadata.Reason = reason
	}
}

// WithTransitionMetadata merges metadata into the transition context.
func WithTransitionMetadata(metadata map[string]any) TransitionOption {
	return func(opts *transitionOptions) {
		if len(metadata) == 0 {
			return
		}
		if opts.metadata.Metadata == nil {
			opts.metadata.Metadata = make(map[string]any, len(metadata))
		}
		for k, v := range metadata {
			opts.metadata.Metadata[k] = v
		}
	}
}

// WithForceTransition bypasses validation rules (use sparingly).
func WithForceTransition() TransitionOption {
	return func(opts *transitionOptions) {
		opts.force = true
	}
}

// WithSuspensionTime overrides the timestamp recorded when entering the suspended state.
func WithSuspensionTime(t time.Time) TransitionOption {
	return func(opts *transitionOptions) {
		opts.suspensionTime = &t
	}
}

type transitionOptions struct {
	metadata       TransitionMetadata
	force          bool
	suspensionTime *time.Time
}

func buildTransitionOptions(opts ...TransitionOption) *transitionOptions {
	options := &transitionOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}
	return options
}

func buildMachineConfig(opts ...StateMachineOption) *machineConfig {
	cfg := &machineConfig{
		now:    time.Now,
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// NewAccountStateMachine returns the default implementation backed by the provided repository.
func NewAccountStateMachine(users Users, opts ...StateMachineOption) AccountStateMachine {
	return &accountStateMachine{
		users: users,
		transitions: map[AccountStatus]map[AccountStatus]struct{}{
			AccountStatusActive: {
				AccountStatusSuspended: {},
			},
			AccountStatusSuspended: {
				AccountStatusActive: {},
			},
		},
		machineConfig: buildMachineConfig(opts...),
	}
}

type accountStateMachine struct {
	*machineConfig
	users       Users
	transitions map[AccountStatus]map[AccountStatus]struct{}
}

func (sm *accountStateMachine) Transition(ctx context.Context, actor ActorRef, user *User, target AccountStatus, opts ...TransitionOption) (*User, error) {
	if user == nil {
		return nil, ErrInvalidAccountTransition.WithMetadata(map[string]any{
			"target": target,
			"reason": "user is nil",
		})
	}

	user.EnsureStatus()
	from := user.Status
	if !IsValidAccountStatus(target) {
		return nil, ErrInvalidAccountTransition.WithMetadata(map[string]any{
			"reason": "unknown target status",
			"to":     target,
		})
	}

	if from == target {
		return user, nil
	}

	options := buildTransitionOptions(opts...)

	if !options.force && !canTransition(sm.transitions, from, target) {
		return nil, ErrInvalidAccountTransition.WithMetadata(map[string]any{
			"from": from,
			"to":   target,
		})
	}

	statusOpts, suspensionTime := sm.buildStatusOptions(user, from, target, options)

	updated, err := sm.users.UpdateStatus(ctx, user.ID, target, statusOpts...)
	if err != nil {
		return nil, err
	}

	sm.applyUpdates(user, updated, target, from, suspensionTime)

	sm.logger.Info("account status changed",
		"user_id", user.ID.String(),
		"from", from,
		"to", target,
		"actor", actor.ID,
		"reason", options.metadata.Reason,
	)

	return user, nil
}

func (sm *accountStateMachine) CurrentStatus(user *User) AccountStatus {
	if user == nil {
		return ""
	}
	user.EnsureStatus()
	return user.Status
}

func (sm *accountStateMachine) buildStatusOptions(user *User, from, to AccountStatus, opts *transitionOptions) ([]StatusUpdateOption, *time.Time) {
	statusOpts := []StatusUpdateOption{}
	var suspensionTime *time.Time

	if to == AccountStatusSuspended {
		switch {
		case opts.suspensionTime != nil:
			suspensionTime = opts.suspensionTime
		case user.SuspendedAt != nil:
			suspensionTime = user.SuspendedAt
		default:
			now := sm.now()
			suspensionTime = &now
		}
		statusOpts = append(statusOpts, WithSuspendedAt(suspensionTime))
	} else if from == AccountStatusSuspended && user.SuspendedAt != nil {
		statusOpts = append(statusOpts, WithSuspendedAt(nil))
	}

	return statusOpts, suspensionTime
}

func (sm *accountStateMachine) applyUpdates(user, updated *User, target, from AccountStatus, suspensionTime *time.Time) {
	if updated != nil {
		if updated.Status != "" {
			user.Status = updated.Status
		} else {
			user.Status = target
		}
		user.SuspendedAt = updated.SuspendedAt
		return
	}

	user.Status = target
	if target == AccountStatusSuspended {
		user.SuspendedAt = suspensionTime
	} else if from == AccountStatusSuspended {
		user.SuspendedAt = nil
	}
}

// NewApprovalStateMachine returns the default implementation backed by the provided repository.
// Pending products move to approved or disapproved; moderation decisions can
// be reversed between approved and disapproved, but nothing returns to pending.
func NewApprovalStateMachine(products Products, opts ...StateMachineOption) ApprovalStateMachine {
	return &approvalStateMachine{
		products: products,
		transitions: map[ProductStatus]map[ProductStatus]struct{}{
			ProductStatusPending: {
				ProductStatusApproved:    {},
				ProductStatusDisapproved: {},
			},
			ProductStatusApproved: {
				ProductStatusDisapproved: {},
			},
			ProductStatusDisapproved: {
				ProductStatusApproved: {},
			},
		},
		machineConfig: buildMachineConfig(opts...),
	}
}

type approvalStateMachine struct {
	*machineConfig
	products    Products
	transitions map[ProductStatus]map[ProductStatus]struct{}
}

func (sm *approvalStateMachine) Transition(ctx context.Context, actor ActorRef, product *Product, target ProductStatus, opts ...TransitionOption) (*Product, error) {
	if product == nil {
		return nil, ErrInvalidProductTransition.WithMetadata(map[string]any{
			"target": target,
			"reason": "product is nil",
		})
	}

	product.EnsureStatus()
	from := product.Status
	if !IsValidProductStatus(target) {
		return nil, ErrInvalidProductTransition.WithMetadata(map[string]any{
			"reason": "unknown target status",
			"to":     target,
		})
	}

	if from == target {
		return product, nil
	}

	options := buildTransitionOptions(opts...)

	if !options.force && !canTransition(sm.transitions, from, target) {
		return nil, ErrInvalidProductTransition.WithMetadata(map[string]any{
			"from": from,
			"to":   target,
		})
	}

	updated, err := sm.products.UpdateStatus(ctx, product.ID, target)
	if err != nil {
		return nil, err
	}

	if updated != nil && updated.Status != "" {
		product.Status = updated.Status
	} else {
		product.Status = target
	}

	sm.logger.Info("product status changed",
		"product_id", product.ID.String(),
		"from", from,
		"to", target,
		"actor", actor.ID,
		"reason", options.metadata.Reason,
	)

	return product, nil
}

func (sm *approvalStateMachine) CurrentStatus(product *Product) ProductStatus {
	if product == nil {
		return ""
	}
	product.EnsureStatus()
	return product.Status
}

func canTransition[S comparable](transitions map[S]map[S]struct{}, from, to S) bool {
	if allowed, ok := transitions[from]; ok {
		_, exists := allowed[to]
		return exists
	}
	return false
}
