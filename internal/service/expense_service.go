package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// CreateExpenseRequest carries the caller's input for recording an expense.
type CreateExpenseRequest struct {
	Description  string
	Amount       float64
	Category     string
	PaidByUserID string
	SplitType    string
	Participants []ledger.SplitInput
	GroupID      string
}

// ExpenseService records expenses. Expenses are immutable once created; the
// split-sum invariant is enforced here, at creation time, and never
// re-checked on read.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpense validates, resolves splits for the requested split type, and
// persists a new expense. The payer's own share is marked paid.
func (s *ExpenseService) CreateExpense(ctx context.Context, callerID string, req CreateExpenseRequest) (*models.Expense, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description required", ErrInvalidExpense)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	if req.PaidByUserID == "" {
		req.PaidByUserID = callerID
	}

	if req.GroupID != "" {
		group, err := s.store.GetGroup(ctx, req.GroupID)
		if err != nil {
			return nil, ErrGroupNotFound
		}
		if !group.HasMember(callerID) {
			return nil, ErrNotAMember
		}
		if !group.HasMember(req.PaidByUserID) {
			return nil, fmt.Errorf("%w: payer is not a group member", ErrInvalidExpense)
		}
		for _, p := range req.Participants {
			if !group.HasMember(p.UserID) {
				return nil, fmt.Errorf("%w: participant %s is not a group member", ErrInvalidExpense, p.UserID)
			}
		}
	}

	splits, err := ledger.ComputeSplits(req.SplitType, req.Amount, req.PaidByUserID, req.Participants)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
	}

	expense := &models.Expense{
		Description:  req.Description,
		Amount:       req.Amount,
		Category:     req.Category,
		PaidByUserID: req.PaidByUserID,
		SplitType:    req.SplitType,
		Splits:       splits,
		GroupID:      req.GroupID,
		CreatedBy:    callerID,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, err
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"split_type", expense.SplitType,
		"group_id", expense.GroupID,
	)
	return expense, nil
}

// ListExpensesWithUser returns the caller's 1:1 expenses involving the given
// counterpart, in insertion order.
func (s *ExpenseService) ListExpensesWithUser(ctx context.Context, callerID, counterpartID string) ([]*models.Expense, error) {
	expenses, err := s.store.ListUngroupedExpensesByUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	var out []*models.Expense
	for _, e := range expenses {
		if involves(e, counterpartID) {
			out = append(out, e)
		}
	}
	return out, nil
}

// involves reports whether the user is the payer or appears among the splits.
func involves(e *models.Expense, userID string) bool {
	if e.PaidByUserID == userID {
		return true
	}
	for _, s := range e.Splits {
		if s.UserID == userID {
			return true
		}
	}
	return false
}
