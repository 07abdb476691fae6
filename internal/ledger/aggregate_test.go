package ledger

import (
	"math"
	"testing"

	"github.com/tallyhq/tally/internal/models"
)

// expense builds a test expense with an equal two-way payer-paid split.
func expense(payerID string, amount float64, splits ...models.Split) *models.Expense {
	return &models.Expense{
		Amount:       amount,
		PaidByUserID: payerID,
		SplitType:    models.SplitEqual,
		Splits:       splits,
	}
}

func TestTallyPair(t *testing.T) {
	tests := []struct {
		name        string
		expenses    []*models.Expense
		settlements []*models.Settlement
		wantOwed    float64
		wantOwing   float64
	}{
		{
			name: "subject paid, counterpart owes half",
			expenses: []*models.Expense{
				expense("alice", 1000,
					models.Split{UserID: "alice", Amount: 500, Paid: true},
					models.Split{UserID: "bob", Amount: 500},
				),
			},
			wantOwed: 500,
		},
		{
			name: "counterpart paid, subject owes half",
			expenses: []*models.Expense{
				expense("bob", 1000,
					models.Split{UserID: "bob", Amount: 500, Paid: true},
					models.Split{UserID: "alice", Amount: 500},
				),
			},
			wantOwing: 500,
		},
		{
			name: "settlement zeroes the debt",
			expenses: []*models.Expense{
				expense("alice", 1000,
					models.Split{UserID: "alice", Amount: 500, Paid: true},
					models.Split{UserID: "bob", Amount: 500},
				),
			},
			settlements: []*models.Settlement{
				{PaidByUserID: "bob", ReceivedByUserID: "alice", Amount: 500},
			},
			wantOwed: 0,
		},
		{
			name: "subject settling own debt",
			expenses: []*models.Expense{
				expense("bob", 600,
					models.Split{UserID: "bob", Amount: 300, Paid: true},
					models.Split{UserID: "alice", Amount: 300},
				),
			},
			settlements: []*models.Settlement{
				{PaidByUserID: "alice", ReceivedByUserID: "bob", Amount: 100},
			},
			wantOwing: 200,
		},
		{
			name: "expense not involving the counterpart is ignored",
			expenses: []*models.Expense{
				expense("alice", 300,
					models.Split{UserID: "alice", Amount: 150, Paid: true},
					models.Split{UserID: "carol", Amount: 150},
				),
			},
			wantOwed: 0,
		},
		{
			name: "expense paid by a third party is ignored",
			expenses: []*models.Expense{
				expense("carol", 300,
					models.Split{UserID: "alice", Amount: 150},
					models.Split{UserID: "bob", Amount: 150},
				),
			},
		},
		{
			name: "paid splits are excluded",
			expenses: []*models.Expense{
				expense("alice", 1000,
					models.Split{UserID: "alice", Amount: 500, Paid: true},
					models.Split{UserID: "bob", Amount: 500, Paid: true},
				),
			},
			wantOwed: 0,
		},
		{
			name: "settlements between other users are ignored",
			settlements: []*models.Settlement{
				{PaidByUserID: "carol", ReceivedByUserID: "bob", Amount: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TallyPair("alice", "bob", tt.expenses, tt.settlements)
			if math.Abs(got.Owed-tt.wantOwed) > Tolerance {
				t.Errorf("Owed = %v, want %v", got.Owed, tt.wantOwed)
			}
			if math.Abs(got.Owing-tt.wantOwing) > Tolerance {
				t.Errorf("Owing = %v, want %v", got.Owing, tt.wantOwing)
			}
		})
	}
}

func TestTallyGroupZeroSum(t *testing.T) {
	members := []string{"a", "b", "c"}
	expenses := []*models.Expense{
		expense("a", 300,
			models.Split{UserID: "a", Amount: 100, Paid: true},
			models.Split{UserID: "b", Amount: 100},
			models.Split{UserID: "c", Amount: 100},
		),
		expense("b", 90,
			models.Split{UserID: "b", Amount: 30, Paid: true},
			models.Split{UserID: "a", Amount: 30},
			models.Split{UserID: "c", Amount: 30},
		),
	}
	settlements := []*models.Settlement{
		{PaidByUserID: "c", ReceivedByUserID: "a", Amount: 50},
	}

	tally := TallyGroup(members, expenses, settlements)

	var sum float64
	for _, id := range members {
		sum += tally.Totals[id]
	}
	if math.Abs(sum) > Tolerance {
		t.Errorf("totals sum to %v, want 0 (conservation)", sum)
	}

	// For a single expense, outstanding debt attributed to the payer equals
	// the sum of the others' shares.
	if math.Abs(tally.Debt["b"]["a"]-100) > Tolerance {
		t.Errorf("Debt[b][a] = %v, want 100", tally.Debt["b"]["a"])
	}

	// The settlement erased debt in the payer's direction: c owed a 100,
	// paid 50 back.
	if math.Abs(tally.Debt["c"]["a"]-50) > Tolerance {
		t.Errorf("Debt[c][a] = %v, want 50", tally.Debt["c"]["a"])
	}
}

func TestTallyGroupPayerOwnSplit(t *testing.T) {
	tally := TallyGroup([]string{"a", "b"}, []*models.Expense{
		expense("a", 100,
			// Payer's own share unmarked: still contributes nothing,
			// guarded by the user != payer check.
			models.Split{UserID: "a", Amount: 50},
			models.Split{UserID: "b", Amount: 50},
		),
	}, nil)

	if tally.Debt["a"]["a"] != 0 {
		t.Errorf("Debt[a][a] = %v, want 0", tally.Debt["a"]["a"])
	}
	if math.Abs(tally.Totals["a"]-50) > Tolerance {
		t.Errorf("Totals[a] = %v, want 50", tally.Totals["a"])
	}
}

func TestTallyGroupDuplicateSplitsDoubleCount(t *testing.T) {
	// A user listed twice in the splits is counted twice. Known sharp edge,
	// preserved rather than silently fixed.
	tally := TallyGroup([]string{"a", "b"}, []*models.Expense{
		expense("a", 100,
			models.Split{UserID: "b", Amount: 50},
			models.Split{UserID: "b", Amount: 50},
		),
	}, nil)

	if math.Abs(tally.Debt["b"]["a"]-100) > Tolerance {
		t.Errorf("Debt[b][a] = %v, want 100", tally.Debt["b"]["a"])
	}
}

func TestTallyGroupSettlementDirection(t *testing.T) {
	tally := TallyGroup([]string{"a", "b"}, []*models.Expense{
		expense("a", 100,
			models.Split{UserID: "a", Amount: 50, Paid: true},
			models.Split{UserID: "b", Amount: 50},
		),
	}, []*models.Settlement{
		{PaidByUserID: "b", ReceivedByUserID: "a", Amount: 50},
	})

	if math.Abs(tally.Totals["a"]) > Tolerance || math.Abs(tally.Totals["b"]) > Tolerance {
		t.Errorf("Totals = %v/%v, want 0/0 after full settlement", tally.Totals["a"], tally.Totals["b"])
	}

	tally.Net()
	if tally.Debt["b"]["a"] != 0 || tally.Debt["a"]["b"] != 0 {
		t.Errorf("netted ledger = %v/%v, want both 0", tally.Debt["b"]["a"], tally.Debt["a"]["b"])
	}
}

func TestTallyGroupUnknownUserInRecords(t *testing.T) {
	// Records referencing a user who left the group still tally rather
	// than panic on a missing map key.
	tally := TallyGroup([]string{"a", "b"}, []*models.Expense{
		expense("ghost", 100,
			models.Split{UserID: "a", Amount: 100},
		),
	}, nil)

	if math.Abs(tally.Debt["a"]["ghost"]-100) > Tolerance {
		t.Errorf("Debt[a][ghost] = %v, want 100", tally.Debt["a"]["ghost"])
	}
	found := false
	for _, id := range tally.Members {
		if id == "ghost" {
			found = true
		}
	}
	if !found {
		t.Error("expected ghost to be appended to members")
	}
}

func TestTallyCounterparts(t *testing.T) {
	expenses := []*models.Expense{
		expense("me", 1000,
			models.Split{UserID: "me", Amount: 500, Paid: true},
			models.Split{UserID: "bob", Amount: 500},
		),
		expense("carol", 300,
			models.Split{UserID: "carol", Amount: 150, Paid: true},
			models.Split{UserID: "me", Amount: 150},
		),
	}
	settlements := []*models.Settlement{
		{PaidByUserID: "me", ReceivedByUserID: "carol", Amount: 150},
	}

	nets, order := TallyCounterparts("me", expenses, settlements)

	if math.Abs(nets["bob"]-500) > Tolerance {
		t.Errorf("nets[bob] = %v, want 500", nets["bob"])
	}
	if math.Abs(nets["carol"]) > Tolerance {
		t.Errorf("nets[carol] = %v, want 0", nets["carol"])
	}
	if len(order) != 2 || order[0] != "bob" || order[1] != "carol" {
		t.Errorf("order = %v, want [bob carol]", order)
	}
}
