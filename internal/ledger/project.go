package ledger

import "sort"

// DeletedUserName is the placeholder display name used when a counterpart's
// profile can no longer be resolved. A missing profile never fails a balance
// computation.
const DeletedUserName = "Deleted user"

// Profile is the display identity attached to projected balances.
type Profile struct {
	Name     string
	ImageURL string
}

// CounterpartBalance is one entry in the dashboard's "who owes me" /
// "whom I owe" lists.
type CounterpartBalance struct {
	UserID   string  `json:"userId"`
	Name     string  `json:"name"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Amount   float64 `json:"amount"`
}

// ScalarView is the dashboard balance payload.
type ScalarView struct {
	TotalBalance float64              `json:"totalBalance"`
	YouAreOwed   float64              `json:"youAreOwed"`
	YouOwe       float64              `json:"youOwe"`
	OwedByUsers  []CounterpartBalance `json:"owedByUsers"`
	OwesToUsers  []CounterpartBalance `json:"owesToUsers"`
}

// PairView is the 1:1 settlement page payload. NetBalance is positive when
// the counterpart owes the subject.
type PairView struct {
	YouAreOwed float64 `json:"youAreOwed"`
	YouOwe     float64 `json:"youOwe"`
	NetBalance float64 `json:"netBalance"`
}

// DebtItem is one edge of a member's netted group debts.
type DebtItem struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// MemberBalance is one member's slice of the group balance payload.
type MemberBalance struct {
	UserID       string     `json:"userId"`
	Name         string     `json:"name"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	TotalBalance float64    `json:"totalBalance"`
	Owes         []DebtItem `json:"owes"`
	OwedBy       []DebtItem `json:"owedBy"`
}

// clamp enforces the invariant that no public outstanding amount is ever
// negative, regardless of settlement order or overpayment. Applied here,
// centrally, and nowhere else.
func clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// ProjectPair shapes a pair tally into the 1:1 settlement view.
func ProjectPair(t PairTally) PairView {
	owed := clamp(t.Owed)
	owing := clamp(t.Owing)
	return PairView{
		YouAreOwed: owed,
		YouOwe:     owing,
		NetBalance: owed - owing,
	}
}

// ProjectScalar shapes per-counterpart nets into the dashboard view.
// Counterparts with a net below Tolerance in magnitude are dropped from both
// lists. Lists are sorted descending by amount; ties keep the first-seen
// order recorded by the aggregator.
func ProjectScalar(nets map[string]float64, order []string, profiles map[string]Profile) ScalarView {
	view := ScalarView{
		OwedByUsers: []CounterpartBalance{},
		OwesToUsers: []CounterpartBalance{},
	}

	for _, id := range order {
		net := nets[id]
		p := profileOr(profiles, id)
		switch {
		case net > Tolerance:
			view.YouAreOwed += net
			view.OwedByUsers = append(view.OwedByUsers, CounterpartBalance{
				UserID: id, Name: p.Name, ImageURL: p.ImageURL, Amount: net,
			})
		case net < -Tolerance:
			view.YouOwe += -net
			view.OwesToUsers = append(view.OwesToUsers, CounterpartBalance{
				UserID: id, Name: p.Name, ImageURL: p.ImageURL, Amount: -net,
			})
		}
	}

	sortByAmountDesc(view.OwedByUsers)
	sortByAmountDesc(view.OwesToUsers)
	view.TotalBalance = view.YouAreOwed - view.YouOwe
	return view
}

// ProjectGroup shapes a netted group tally into per-member balances, in the
// group's member order. Call Net first; ProjectGroup reads the ledger as-is.
func ProjectGroup(t *GroupTally, profiles map[string]Profile) []MemberBalance {
	out := make([]MemberBalance, 0, len(t.Members))
	for _, id := range t.Members {
		p := profileOr(profiles, id)
		mb := MemberBalance{
			UserID:       id,
			Name:         p.Name,
			ImageURL:     p.ImageURL,
			TotalBalance: t.Totals[id],
			Owes:         []DebtItem{},
			OwedBy:       []DebtItem{},
		}

		for _, other := range t.Members {
			if other == id {
				continue
			}
			if amt := clamp(t.Debt[id][other]); amt > Tolerance {
				mb.Owes = append(mb.Owes, DebtItem{
					UserID: other, Name: profileOr(profiles, other).Name, Amount: amt,
				})
			}
			if amt := clamp(t.Debt[other][id]); amt > Tolerance {
				mb.OwedBy = append(mb.OwedBy, DebtItem{
					UserID: other, Name: profileOr(profiles, other).Name, Amount: amt,
				})
			}
		}

		sort.SliceStable(mb.Owes, func(i, j int) bool { return mb.Owes[i].Amount > mb.Owes[j].Amount })
		sort.SliceStable(mb.OwedBy, func(i, j int) bool { return mb.OwedBy[i].Amount > mb.OwedBy[j].Amount })
		out = append(out, mb)
	}
	return out
}

func sortByAmountDesc(entries []CounterpartBalance) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Amount > entries[j].Amount })
}

func profileOr(profiles map[string]Profile, id string) Profile {
	if p, ok := profiles[id]; ok && p.Name != "" {
		return p
	}
	return Profile{Name: DeletedUserName}
}
