package ledger

import (
	"fmt"
	"math"

	"github.com/tallyhq/tally/internal/models"
)

// Tolerance is the fixed tolerance used for every monetary comparison.
// Exact float equality is never used for amounts.
const Tolerance = 0.01

// SplitInput is one participant's requested share when creating an expense.
// Value is interpreted per split type: ignored for equal splits, a percentage
// for percentage splits, an absolute amount for exact splits.
type SplitInput struct {
	UserID string
	Value  float64
}

// Outstanding reports whether a split still contributes to what others owe
// the payer. The payer's own share and any share already marked paid never
// count toward outstanding debt.
func Outstanding(s models.Split, payerID string) bool {
	return s.UserID != payerID && !s.Paid
}

// ComputeSplits resolves the requested split type into concrete per-user
// amounts. The payer's own share, if present, is marked paid.
func ComputeSplits(splitType string, amount float64, payerID string, inputs []SplitInput) ([]models.Split, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("expense amount must be positive, got %.2f", amount)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	splits := make([]models.Split, len(inputs))
	switch splitType {
	case models.SplitEqual:
		share := amount / float64(len(inputs))
		for i, in := range inputs {
			splits[i] = models.Split{UserID: in.UserID, Amount: share}
		}
	case models.SplitPercentage:
		for i, in := range inputs {
			if in.Value < 0 {
				return nil, fmt.Errorf("percentage for user %s must not be negative", in.UserID)
			}
			splits[i] = models.Split{UserID: in.UserID, Amount: amount * in.Value / 100}
		}
	case models.SplitExact:
		for i, in := range inputs {
			if in.Value < 0 {
				return nil, fmt.Errorf("amount for user %s must not be negative", in.UserID)
			}
			splits[i] = models.Split{UserID: in.UserID, Amount: in.Value}
		}
	default:
		return nil, fmt.Errorf("unknown split type %q", splitType)
	}

	for i := range splits {
		if splits[i].UserID == payerID {
			splits[i].Paid = true
		}
	}

	if err := ValidateSplits(amount, splits); err != nil {
		return nil, err
	}
	return splits, nil
}

// ValidateSplits checks the creation-time invariant that the split amounts
// sum to the expense amount within Tolerance. It is not re-checked on read.
func ValidateSplits(amount float64, splits []models.Split) error {
	var sum float64
	for _, s := range splits {
		if s.Amount < 0 {
			return fmt.Errorf("split amount for user %s must not be negative", s.UserID)
		}
		sum += s.Amount
	}
	if math.Abs(sum-amount) > Tolerance {
		return fmt.Errorf("split amounts sum to %.2f, expense total is %.2f", sum, amount)
	}
	return nil
}
