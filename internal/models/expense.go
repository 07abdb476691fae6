package models

// Split types supported for dividing an expense.
const (
	SplitEqual      = "equal"
	SplitPercentage = "percentage"
	SplitExact      = "exact"
)

// Split is one participant's assigned share of an expense.
type Split struct {
	// UserID references the participant.
	UserID string

	// Amount is this participant's share of the expense total.
	Amount float64

	// Paid marks the share as settled at creation time. Typically true only
	// for the payer's own share. Paid splits never contribute to what
	// others owe.
	Paid bool
}

// Expense represents a shared expense paid by one user and split among
// participants. Expenses are immutable once created.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable label (e.g., "Dinner", "Rent").
	Description string

	// Amount is the total expense amount. Always > 0.
	Amount float64

	// Category is a free-form category label (e.g., "food", "utilities").
	Category string

	// Date is the Unix timestamp of the expense.
	Date int64

	// PaidByUserID is the user who paid the full amount up front.
	PaidByUserID string

	// SplitType records how the splits were derived: equal, percentage
	// or exact. The stored Splits always carry resolved amounts.
	SplitType string

	// Splits is the division of Amount among participants. The sum of
	// split amounts matches Amount within a 0.01 tolerance; this is
	// enforced at creation time and not re-checked on read.
	Splits []Split

	// GroupID ties the expense to a group. Empty for 1:1 expenses.
	GroupID string

	// CreatedBy is the user who recorded the expense.
	CreatedBy string
}
