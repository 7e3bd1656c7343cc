// Package gateway is the single mutation path into the ledger. It validates
// drafts, assigns identifiers, and applies one of two mutually exclusive
// persistence policies: local mode commits straight to the ledger's
// write-through store; remote mode round-trips every mutation through the
// backend and commits locally only after the remote acknowledged it, so a
// failed call never leaves the ledger out of step with what was persisted.
package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/apiclient"
	"fintrack/internal/category"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/ledger"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/session"
	"fintrack/internal/uuid"
)

// Operation kinds used by the in-flight guard.
const (
	opAddExpense    = "add_expense"
	opUpdateExpense = "update_expense"
	opDeleteExpense = "delete_expense"
	opSetLimit      = "set_limit"
	opRemoveLimit   = "remove_limit"
)

// Draft is a user-entered expense before the gateway assigns an identity.
type Draft struct {
	Amount   decimal.Decimal
	Category category.Category
	Date     models.Date
	Note     string
}

// Gateway applies mutations to a ledger, optionally via a remote backend.
type Gateway struct {
	ledger  *ledger.Ledger
	remote  *apiclient.Client // nil in local mode
	session session.Session

	mu       sync.Mutex
	inFlight map[string]bool
}

// New returns a Gateway. Pass a nil remote client for local mode.
func New(l *ledger.Ledger, remote *apiclient.Client, sess session.Session) *Gateway {
	return &Gateway{
		ledger:   l,
		remote:   remote,
		session:  sess,
		inFlight: make(map[string]bool),
	}
}

// RemoteMode reports whether mutations round-trip through the backend.
func (g *Gateway) RemoteMode() bool { return g.remote != nil }

// begin marks an operation kind in flight. A second submission of the same
// kind while one is pending is rejected, not fired concurrently.
func (g *Gateway) begin(op string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[op] {
		return apperrors.ErrMutationInFlight
	}
	g.inFlight[op] = true
	return nil
}

func (g *Gateway) end(op string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, op)
}

// requireCredential gates remote calls on the session. A missing credential
// is an explicit pending state the caller can distinguish from both success
// and failure, not a silent skip.
func (g *Gateway) requireCredential() error {
	if g.session.Credential() == "" {
		logger.Get().Debugw("mutation deferred, session has no credential yet")
		return apperrors.ErrAuthNotReady
	}
	return nil
}

// AddExpense validates the draft, assigns a UUIDv7 ID and creation
// timestamp, and commits it. The new record is returned.
func (g *Gateway) AddExpense(ctx context.Context, draft Draft) (*models.Expense, error) {
	if err := g.begin(opAddExpense); err != nil {
		return nil, err
	}
	defer g.end(opAddExpense)

	if !draft.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if !draft.Category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	e := models.Expense{
		Base:     models.Base{ID: uuid.New(), CreatedAt: time.Now()},
		Amount:   draft.Amount,
		Category: draft.Category,
		Date:     draft.Date,
		Note:     draft.Note,
	}

	if g.remote != nil {
		if err := g.requireCredential(); err != nil {
			return nil, err
		}
		created, err := g.remote.CreateExpense(ctx, e)
		if err != nil {
			return nil, err
		}
		e = *created
	}

	if err := g.ledger.Insert(e); err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateExpense fully replaces the fields of an existing expense (except its
// ID). The order of all other records is preserved.
func (g *Gateway) UpdateExpense(ctx context.Context, e models.Expense) (*models.Expense, error) {
	if err := g.begin(opUpdateExpense); err != nil {
		return nil, err
	}
	defer g.end(opUpdateExpense)

	if !e.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}
	if !e.Category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	if g.remote != nil {
		if err := g.requireCredential(); err != nil {
			return nil, err
		}
		updated, err := g.remote.UpdateExpense(ctx, e)
		if err != nil {
			return nil, err
		}
		e = *updated
	}

	if err := g.ledger.Update(e); err != nil {
		return nil, err
	}
	return &e, nil
}

// DeleteExpense removes exactly one expense by ID. Interactive confirmation
// is the view layer's responsibility; by the time this runs the decision is
// made.
func (g *Gateway) DeleteExpense(ctx context.Context, id string) error {
	if err := g.begin(opDeleteExpense); err != nil {
		return err
	}
	defer g.end(opDeleteExpense)

	if g.remote != nil {
		if err := g.requireCredential(); err != nil {
			return err
		}
		if err := g.remote.DeleteExpense(ctx, id); err != nil {
			return err
		}
	}

	return g.ledger.Remove(id)
}

// SetBudgetLimit upserts one category's monthly cap. The remote contract is
// keyed per category, never a whole-mapping overwrite.
func (g *Gateway) SetBudgetLimit(ctx context.Context, cat category.Category, limit decimal.Decimal) error {
	if err := g.begin(opSetLimit); err != nil {
		return err
	}
	defer g.end(opSetLimit)

	if !limit.IsPositive() {
		return apperrors.ErrInvalidLimit
	}
	if !cat.Valid() {
		return apperrors.ErrInvalidCategory
	}

	if g.remote != nil {
		if err := g.requireCredential(); err != nil {
			return err
		}
		if err := g.remote.PutBudgetLimit(ctx, cat, limit); err != nil {
			return err
		}
	}

	return g.ledger.SetLimit(cat, limit)
}

// RemoveBudgetLimit unsets one category's monthly cap.
func (g *Gateway) RemoveBudgetLimit(ctx context.Context, cat category.Category) error {
	if err := g.begin(opRemoveLimit); err != nil {
		return err
	}
	defer g.end(opRemoveLimit)

	if g.remote != nil {
		if err := g.requireCredential(); err != nil {
			return err
		}
		if err := g.remote.DeleteBudgetLimit(ctx, cat); err != nil {
			return err
		}
	}

	return g.ledger.RemoveLimit(cat)
}

// Refresh pulls the authoritative snapshot from the backend into the ledger.
// Local mode has nothing to refresh from and returns nil.
func (g *Gateway) Refresh(ctx context.Context) error {
	if g.remote == nil {
		return nil
	}
	if err := g.requireCredential(); err != nil {
		return err
	}

	expenses, err := g.remote.ListExpenses(ctx)
	if err != nil {
		return err
	}
	budgets, err := g.remote.ListBudgets(ctx)
	if err != nil {
		return err
	}

	if err := g.ledger.ReplaceExpenses(expenses); err != nil {
		return err
	}
	return g.ledger.ReplaceBudgets(budgets)
}
