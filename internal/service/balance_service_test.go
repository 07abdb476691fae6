package service

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
	"github.com/tallyhq/tally/internal/storage/sqlite"
)

const epsilon = 0.01

// newTestStore creates a SQLite store backed by a temp database.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store storage.Store, name string) *models.User {
	t.Helper()
	user := models.NewUser(name+"@example.com", name, "hash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user
}

// recordEqualExpense records an equal-split expense through the service.
func recordEqualExpense(t *testing.T, svc *ExpenseService, payer *models.User, amount float64, groupID string, participants ...*models.User) *models.Expense {
	t.Helper()
	inputs := make([]ledger.SplitInput, len(participants))
	for i, p := range participants {
		inputs[i] = ledger.SplitInput{UserID: p.ID}
	}
	expense, err := svc.CreateExpense(context.Background(), payer.ID, CreateExpenseRequest{
		Description:  "test expense",
		Amount:       amount,
		PaidByUserID: payer.ID,
		SplitType:    models.SplitEqual,
		Participants: inputs,
		GroupID:      groupID,
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return expense
}

func TestPairBalanceLifecycle(t *testing.T) {
	store := newTestStore(t)
	expenses := NewExpenseService(store)
	settlements := NewSettlementService(store)
	balances := NewBalanceService(store)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")

	// Expense of 1000 split equally, alice paid.
	recordEqualExpense(t, expenses, alice, 1000, "", alice, bob)

	aliceView, err := balances.GetBalances(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if math.Abs(aliceView.YouAreOwed-500) > epsilon {
		t.Errorf("alice YouAreOwed = %v, want 500", aliceView.YouAreOwed)
	}
	if len(aliceView.OwedByUsers) != 1 || aliceView.OwedByUsers[0].UserID != bob.ID {
		t.Errorf("alice OwedByUsers = %+v, want one entry for bob", aliceView.OwedByUsers)
	}
	if aliceView.OwedByUsers[0].Name != "bob" {
		t.Errorf("counterpart name = %q, want bob", aliceView.OwedByUsers[0].Name)
	}

	bobView, err := balances.GetBalances(ctx, bob.ID)
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if math.Abs(bobView.YouOwe-500) > epsilon {
		t.Errorf("bob YouOwe = %v, want 500", bobView.YouOwe)
	}
	if math.Abs(bobView.TotalBalance+500) > epsilon {
		t.Errorf("bob TotalBalance = %v, want -500", bobView.TotalBalance)
	}

	// Bob settles the full 500.
	_, err = settlements.CreateSettlement(ctx, bob.ID, CreateSettlementRequest{
		Amount:           500,
		PaidByUserID:     bob.ID,
		ReceivedByUserID: alice.ID,
	})
	if err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	pair, err := balances.GetPairBalance(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetPairBalance failed: %v", err)
	}
	if math.Abs(pair.YouAreOwed) > epsilon || math.Abs(pair.YouOwe) > epsilon || math.Abs(pair.NetBalance) > epsilon {
		t.Errorf("pair view after settlement = %+v, want all zero", pair)
	}
	if pair.CounterpartName != "bob" {
		t.Errorf("CounterpartName = %q, want bob", pair.CounterpartName)
	}

	// Zero-net counterparts drop off the dashboard lists.
	aliceView, err = balances.GetBalances(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if len(aliceView.OwedByUsers) != 0 || len(aliceView.OwesToUsers) != 0 {
		t.Errorf("expected empty lists after settlement, got %+v / %+v",
			aliceView.OwedByUsers, aliceView.OwesToUsers)
	}
}

func TestPairBalanceNeverNegative(t *testing.T) {
	store := newTestStore(t)
	expenses := NewExpenseService(store)
	settlements := NewSettlementService(store)
	balances := NewBalanceService(store)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")

	recordEqualExpense(t, expenses, alice, 100, "", alice, bob)

	// Bob overpays.
	_, err := settlements.CreateSettlement(ctx, bob.ID, CreateSettlementRequest{
		Amount:           200,
		PaidByUserID:     bob.ID,
		ReceivedByUserID: alice.ID,
	})
	if err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	pair, err := balances.GetPairBalance(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("GetPairBalance failed: %v", err)
	}
	if pair.YouAreOwed < 0 || pair.YouOwe < 0 {
		t.Errorf("outstanding amounts must never be negative: %+v", pair)
	}
}

func TestGetPairBalanceUnknownCounterpart(t *testing.T) {
	store := newTestStore(t)
	balances := NewBalanceService(store)

	alice := createUser(t, store, "alice")

	_, err := balances.GetPairBalance(context.Background(), alice.ID, "no-such-user")
	if !errors.Is(err, ErrCounterpartNotFound) {
		t.Errorf("error = %v, want ErrCounterpartNotFound", err)
	}
}

func TestGroupBalances(t *testing.T) {
	store := newTestStore(t)
	expenses := NewExpenseService(store)
	groups := NewGroupService(store)
	balances := NewBalanceService(store)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	carol := createUser(t, store, "carol")

	group, err := groups.CreateGroup(ctx, alice.ID, "Trip", []string{bob.ID, carol.ID})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	// Alice pays 300 split equally, then Bob pays 300 split equally.
	recordEqualExpense(t, expenses, alice, 300, group.ID, alice, bob, carol)
	recordEqualExpense(t, expenses, bob, 300, group.ID, alice, bob, carol)

	memberBalances, err := balances.GetGroupBalances(ctx, alice.ID, group.ID)
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}

	byID := make(map[string]ledger.MemberBalance)
	for _, mb := range memberBalances {
		byID[mb.UserID] = mb
	}

	// Alice and Bob net to zero against each other; Carol owes each 100.
	a := byID[alice.ID]
	if math.Abs(a.TotalBalance-100) > epsilon {
		t.Errorf("alice total = %v, want 100", a.TotalBalance)
	}
	if len(a.Owes) != 0 {
		t.Errorf("alice.Owes = %+v, want empty", a.Owes)
	}
	if len(a.OwedBy) != 1 || a.OwedBy[0].UserID != carol.ID {
		t.Fatalf("alice.OwedBy = %+v, want one entry for carol", a.OwedBy)
	}
	if math.Abs(a.OwedBy[0].Amount-100) > epsilon {
		t.Errorf("carol owes alice %v, want 100", a.OwedBy[0].Amount)
	}

	c := byID[carol.ID]
	if math.Abs(c.TotalBalance+200) > epsilon {
		t.Errorf("carol total = %v, want -200", c.TotalBalance)
	}
	if len(c.Owes) != 2 {
		t.Errorf("carol.Owes = %+v, want 2 entries", c.Owes)
	}
}

func TestGroupBalancesAccessControl(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroupService(store)
	balances := NewBalanceService(store)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	mallory := createUser(t, store, "mallory")

	group, err := groups.CreateGroup(ctx, alice.ID, "Private", nil)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if _, err := balances.GetGroupBalances(ctx, mallory.ID, group.ID); !errors.Is(err, ErrNotAMember) {
		t.Errorf("error = %v, want ErrNotAMember", err)
	}

	if _, err := balances.GetGroupBalances(ctx, alice.ID, "no-such-group"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("error = %v, want ErrGroupNotFound", err)
	}
}

func TestDashboardMergesGroupAndPairBalances(t *testing.T) {
	store := newTestStore(t)
	expenses := NewExpenseService(store)
	groups := NewGroupService(store)
	balances := NewBalanceService(store)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")

	// 1:1 expense: bob owes alice 50.
	recordEqualExpense(t, expenses, alice, 100, "", alice, bob)

	// Group expense: bob owes alice another 100.
	group, err := groups.CreateGroup(ctx, alice.ID, "Dinner club", []string{bob.ID})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	recordEqualExpense(t, expenses, alice, 200, group.ID, alice, bob)

	view, err := balances.GetBalances(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if math.Abs(view.YouAreOwed-150) > epsilon {
		t.Errorf("YouAreOwed = %v, want 150 (50 from 1:1 + 100 from group)", view.YouAreOwed)
	}
	if len(view.OwedByUsers) != 1 {
		t.Fatalf("OwedByUsers = %+v, want single merged entry for bob", view.OwedByUsers)
	}
	if math.Abs(view.OwedByUsers[0].Amount-150) > epsilon {
		t.Errorf("merged amount = %v, want 150", view.OwedByUsers[0].Amount)
	}
}

func TestDashboardDeletedCounterpart(t *testing.T) {
	store := newTestStore(t)
	expenses := NewExpenseService(store)
	balances := NewBalanceService(store)
	ctx := context.Background()

	alice := createUser(t, store, "alice")

	// Expense against a user ID that doesn't resolve; the computation must
	// still succeed with a placeholder identity.
	_, err := expenses.CreateExpense(ctx, alice.ID, CreateExpenseRequest{
		Description:  "old debt",
		Amount:       80,
		PaidByUserID: alice.ID,
		SplitType:    models.SplitEqual,
		Participants: []ledger.SplitInput{{UserID: alice.ID}, {UserID: "gone-user"}},
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	view, err := balances.GetBalances(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetBalances failed: %v", err)
	}
	if len(view.OwedByUsers) != 1 {
		t.Fatalf("OwedByUsers = %+v, want one entry", view.OwedByUsers)
	}
	if view.OwedByUsers[0].Name != ledger.DeletedUserName {
		t.Errorf("Name = %q, want placeholder %q", view.OwedByUsers[0].Name, ledger.DeletedUserName)
	}
}
