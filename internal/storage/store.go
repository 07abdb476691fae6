// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/tallyhq/tally/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for record storage. It is an append-only record
// store for expenses and settlements: single-record inserts are atomic, IDs
// and timestamps are server-assigned, and list operations return records in
// insertion order. This abstraction allows swapping storage backends
// (SQLite, PostgreSQL, etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when the user
	// does not exist; callers substitute a placeholder identity rather
	// than failing.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// account exists for the address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateGroup persists a new group with its initial members.
	// The group's ID and CreatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members in join order.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// AddMember adds a user to an existing group.
	AddMember(ctx context.Context, groupID string, member models.Member) error

	// ListGroupsByUser retrieves every group the user is a member of.
	ListGroupsByUser(ctx context.Context, userID string) ([]*models.Group, error)

	// CreateExpense persists a new expense with its splits atomically.
	// The expense's ID and Date are populated by the store if unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListGroupExpenses retrieves all expenses tagged with the group ID.
	ListGroupExpenses(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListUngroupedExpensesByUser retrieves all expenses without a group
	// in which the user is the payer or appears among the splits.
	ListUngroupedExpensesByUser(ctx context.Context, userID string) ([]*models.Expense, error)

	// CreateSettlement persists a new settlement.
	// The settlement's ID and Date are populated by the store if unset.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListGroupSettlements retrieves all settlements tagged with the group ID.
	ListGroupSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// ListUngroupedSettlementsByUser retrieves all settlements without a
	// group in which the user paid or received.
	ListUngroupedSettlementsByUser(ctx context.Context, userID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
