package service

import (
	"context"
	"log/slog"

	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/storage"
)

// BalanceService answers balance queries. It is read-only: each query fetches
// a snapshot of records and hands it to the ledger package, which recomputes
// balances from scratch every time.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GetBalances computes the dashboard view for a user: the signed total and
// the "who owes me" / "whom I owe" lists across every 1:1 counterpart and
// every group the user belongs to.
func (s *BalanceService) GetBalances(ctx context.Context, subjectID string) (*ledger.ScalarView, error) {
	expenses, err := s.store.ListUngroupedExpensesByUser(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListUngroupedSettlementsByUser(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	nets, order := ledger.TallyCounterparts(subjectID, expenses, settlements)

	groups, err := s.store.ListGroupsByUser(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	for _, group := range groups {
		tally, err := s.groupTally(ctx, group.ID, group.MemberIDs())
		if err != nil {
			return nil, err
		}
		tally.Net()

		for _, other := range tally.Members {
			if other == subjectID {
				continue
			}
			// Post-netting, at most one of these cells is non-zero.
			contribution := tally.Debt[other][subjectID] - tally.Debt[subjectID][other]
			if contribution == 0 {
				continue
			}
			if _, seen := nets[other]; !seen {
				order = append(order, other)
			}
			nets[other] += contribution
		}
	}

	profiles, err := resolveProfiles(ctx, s.store, order)
	if err != nil {
		return nil, err
	}

	view := ledger.ProjectScalar(nets, order, profiles)
	slog.Debug("Computed dashboard balances",
		"user_id", subjectID,
		"counterparts", len(order),
		"total", view.TotalBalance,
	)
	return &view, nil
}

// PairBalance is the 1:1 settlement page payload: the pair view plus the
// counterpart's identity.
type PairBalance struct {
	CounterpartID    string  `json:"counterpartId"`
	CounterpartName  string  `json:"counterpartName"`
	CounterpartImage string  `json:"counterpartImage,omitempty"`
	YouAreOwed       float64 `json:"youAreOwed"`
	YouOwe           float64 `json:"youOwe"`
	NetBalance       float64 `json:"netBalance"`
}

// GetPairBalance computes the subject's net position against one counterpart
// from their 1:1 expenses and settlements. An unknown counterpart is a
// rejection, not a zero balance.
func (s *BalanceService) GetPairBalance(ctx context.Context, subjectID, counterpartID string) (*PairBalance, error) {
	counterpart, err := s.store.GetUserByID(ctx, counterpartID)
	if err != nil {
		return nil, err
	}
	if counterpart == nil {
		return nil, ErrCounterpartNotFound
	}

	expenses, err := s.store.ListUngroupedExpensesByUser(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListUngroupedSettlementsByUser(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	view := ledger.ProjectPair(ledger.TallyPair(subjectID, counterpartID, expenses, settlements))

	return &PairBalance{
		CounterpartID:    counterpart.ID,
		CounterpartName:  counterpart.Name,
		CounterpartImage: counterpart.ImageURL,
		YouAreOwed:       view.YouAreOwed,
		YouOwe:           view.YouOwe,
		NetBalance:       view.NetBalance,
	}, nil
}

// GetGroupBalances computes every member's balance in a group from the
// netted pairwise ledger. The caller must be a member; the membership check
// runs before any aggregation.
func (s *BalanceService) GetGroupBalances(ctx context.Context, subjectID, groupID string) ([]ledger.MemberBalance, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, ErrGroupNotFound
	}
	if !group.HasMember(subjectID) {
		return nil, ErrNotAMember
	}

	tally, err := s.groupTally(ctx, group.ID, group.MemberIDs())
	if err != nil {
		return nil, err
	}
	tally.Net()

	profiles, err := resolveProfiles(ctx, s.store, tally.Members)
	if err != nil {
		return nil, err
	}

	return ledger.ProjectGroup(tally, profiles), nil
}

func (s *BalanceService) groupTally(ctx context.Context, groupID string, memberIDs []string) (*ledger.GroupTally, error) {
	expenses, err := s.store.ListGroupExpenses(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListGroupSettlements(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ledger.TallyGroup(memberIDs, expenses, settlements), nil
}
