package models

// Settlement represents a direct payment between two users that reduces
// standing debt. It is a directional payment, not an arbitrary ledger
// adjustment: the payer is always paying down what they owe the receiver.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// Amount is the payment amount. Always > 0.
	Amount float64

	// Note is an optional description for the settlement.
	Note string

	// Date is the Unix timestamp when the settlement was recorded.
	Date int64

	// PaidByUserID is the user who paid (debtor settling up).
	PaidByUserID string

	// ReceivedByUserID is the user who received payment. Never equal to
	// PaidByUserID; enforced at creation time.
	ReceivedByUserID string

	// GroupID ties the settlement to a group. Empty for 1:1 settlements.
	// When set, both parties are members of the group at settlement time.
	GroupID string

	// RelatedExpenseIDs optionally links the expenses this payment covers.
	RelatedExpenseIDs []string

	// CreatedBy is the user who recorded the settlement.
	CreatedBy string
}
