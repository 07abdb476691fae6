package ledger

import (
	"math"
	"testing"

	"github.com/tallyhq/tally/internal/models"
)

func TestOutstanding(t *testing.T) {
	tests := []struct {
		name    string
		split   models.Split
		payerID string
		want    bool
	}{
		{
			name:    "other user, unpaid",
			split:   models.Split{UserID: "bob", Amount: 50},
			payerID: "alice",
			want:    true,
		},
		{
			name:    "payer's own share",
			split:   models.Split{UserID: "alice", Amount: 50},
			payerID: "alice",
			want:    false,
		},
		{
			name:    "already paid",
			split:   models.Split{UserID: "bob", Amount: 50, Paid: true},
			payerID: "alice",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outstanding(tt.split, tt.payerID); got != tt.want {
				t.Errorf("Outstanding() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		name         string
		splitType    string
		amount       float64
		payerID      string
		inputs       []SplitInput
		wantErr      bool
		validateFunc func(t *testing.T, splits []models.Split)
	}{
		{
			name:      "equal split between two",
			splitType: models.SplitEqual,
			amount:    1000,
			payerID:   "alice",
			inputs:    []SplitInput{{UserID: "alice"}, {UserID: "bob"}},
			validateFunc: func(t *testing.T, splits []models.Split) {
				for _, s := range splits {
					if math.Abs(s.Amount-500) > Tolerance {
						t.Errorf("%s amount = %v, want 500", s.UserID, s.Amount)
					}
				}
				if !splits[0].Paid {
					t.Error("payer's own share should be marked paid")
				}
				if splits[1].Paid {
					t.Error("bob's share should not be marked paid")
				}
			},
		},
		{
			name:      "percentage split",
			splitType: models.SplitPercentage,
			amount:    200,
			payerID:   "alice",
			inputs:    []SplitInput{{UserID: "alice", Value: 25}, {UserID: "bob", Value: 75}},
			validateFunc: func(t *testing.T, splits []models.Split) {
				if math.Abs(splits[0].Amount-50) > Tolerance {
					t.Errorf("alice amount = %v, want 50", splits[0].Amount)
				}
				if math.Abs(splits[1].Amount-150) > Tolerance {
					t.Errorf("bob amount = %v, want 150", splits[1].Amount)
				}
			},
		},
		{
			name:      "exact split",
			splitType: models.SplitExact,
			amount:    100,
			payerID:   "carol",
			inputs:    []SplitInput{{UserID: "alice", Value: 30.5}, {UserID: "bob", Value: 69.5}},
			validateFunc: func(t *testing.T, splits []models.Split) {
				if splits[0].Paid || splits[1].Paid {
					t.Error("no share should be marked paid when payer is not a participant")
				}
			},
		},
		{
			name:      "exact split not summing to total",
			splitType: models.SplitExact,
			amount:    100,
			payerID:   "alice",
			inputs:    []SplitInput{{UserID: "alice", Value: 30}, {UserID: "bob", Value: 60}},
			wantErr:   true,
		},
		{
			name:      "exact split within tolerance",
			splitType: models.SplitExact,
			amount:    100,
			payerID:   "alice",
			inputs:    []SplitInput{{UserID: "alice", Value: 33.33}, {UserID: "bob", Value: 33.33}, {UserID: "carol", Value: 33.33}},
			validateFunc: func(t *testing.T, splits []models.Split) {
				// 99.99 vs 100.00 is within the 0.01 tolerance
				if len(splits) != 3 {
					t.Fatalf("expected 3 splits, got %d", len(splits))
				}
			},
		},
		{
			name:      "percentages not summing to 100",
			splitType: models.SplitPercentage,
			amount:    100,
			payerID:   "alice",
			inputs:    []SplitInput{{UserID: "alice", Value: 50}, {UserID: "bob", Value: 40}},
			wantErr:   true,
		},
		{
			name:      "negative exact amount",
			splitType: models.SplitExact,
			amount:    100,
			payerID:   "alice",
			inputs:    []SplitInput{{UserID: "alice", Value: 150}, {UserID: "bob", Value: -50}},
			wantErr:   true,
		},
		{
			name:      "unknown split type",
			splitType: "shares",
			amount:    100,
			payerID:   "alice",
			inputs:    []SplitInput{{UserID: "alice"}},
			wantErr:   true,
		},
		{
			name:      "zero amount",
			splitType: models.SplitEqual,
			amount:    0,
			payerID:   "alice",
			inputs:    []SplitInput{{UserID: "alice"}},
			wantErr:   true,
		},
		{
			name:      "no participants",
			splitType: models.SplitEqual,
			amount:    100,
			payerID:   "alice",
			inputs:    nil,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := ComputeSplits(tt.splitType, tt.amount, tt.payerID, tt.inputs)
			if (err != nil) != tt.wantErr {
				t.Errorf("ComputeSplits() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func TestValidateSplits(t *testing.T) {
	splits := []models.Split{
		{UserID: "alice", Amount: 49.995},
		{UserID: "bob", Amount: 50.0},
	}
	// 99.995 vs 100 is within tolerance
	if err := ValidateSplits(100, splits); err != nil {
		t.Errorf("ValidateSplits() = %v, want nil", err)
	}
	// 99.995 vs 100.02 is not
	if err := ValidateSplits(100.02, splits); err == nil {
		t.Error("ValidateSplits() = nil, want error")
	}
}
