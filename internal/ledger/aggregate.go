package ledger

import "github.com/tallyhq/tally/internal/models"

// PairTally holds the raw directional counters between a subject and one
// counterpart before projection. Owed is what the counterpart owes the
// subject; Owing is what the subject owes the counterpart. Counters are not
// clamped here; clamping happens once, in the projector.
type PairTally struct {
	Owed  float64
	Owing float64
}

// TallyPair folds 1:1 expenses and settlements into directional counters for
// a (subject, counterpart) pair.
//
// Only expenses involving both parties count: the payer must be one of the
// pair and the other must appear among the splits. An expense in which the
// two appear separately from each other is ignored.
func TallyPair(subjectID, counterpartID string, expenses []*models.Expense, settlements []*models.Settlement) PairTally {
	var t PairTally

	for _, e := range expenses {
		var other string
		switch e.PaidByUserID {
		case subjectID:
			other = counterpartID
		case counterpartID:
			other = subjectID
		default:
			continue
		}

		for _, s := range e.Splits {
			if s.UserID != other || !Outstanding(s, e.PaidByUserID) {
				continue
			}
			if e.PaidByUserID == subjectID {
				t.Owed += s.Amount
			} else {
				t.Owing += s.Amount
			}
		}
	}

	for _, s := range settlements {
		switch {
		case s.PaidByUserID == subjectID && s.ReceivedByUserID == counterpartID:
			t.Owing -= s.Amount
		case s.PaidByUserID == counterpartID && s.ReceivedByUserID == subjectID:
			t.Owed -= s.Amount
		}
	}

	return t
}

// GroupTally holds a group's per-member signed totals and the raw directional
// debt ledger before netting. Debt[debtor][creditor] is the amount the debtor
// owes the creditor. Both maps are initialized for every known member up
// front, so absent keys never occur for members.
type GroupTally struct {
	// Members preserves the group's member order for stable projections.
	Members []string

	// Totals is the flat signed balance per member: positive means the
	// member is owed money overall within the group.
	Totals map[string]float64

	// Debt is the directional ledger. After Net, at most one direction per
	// pair is non-zero.
	Debt map[string]map[string]float64
}

// TallyGroup folds a group's expenses and settlements into per-member totals
// and the raw directional ledger.
//
// Every outstanding split records a debt from the split's user to the payer.
// A user listed more than once in an expense's splits is counted each time;
// duplicates are not collapsed.
//
// A settlement mirrors an expense in which the payer "pays for" the receiver:
// it raises the payer's total, lowers the receiver's, and erases standing
// debt in the payer→receiver direction. A cell may go negative here; the
// netting pass resolves it.
func TallyGroup(memberIDs []string, expenses []*models.Expense, settlements []*models.Settlement) *GroupTally {
	t := &GroupTally{
		Members: memberIDs,
		Totals:  make(map[string]float64, len(memberIDs)),
		Debt:    make(map[string]map[string]float64, len(memberIDs)),
	}
	for _, id := range memberIDs {
		t.Totals[id] = 0
		t.Debt[id] = make(map[string]float64, len(memberIDs))
	}

	for _, e := range expenses {
		payer := e.PaidByUserID
		for _, s := range e.Splits {
			if !Outstanding(s, payer) {
				continue
			}
			t.ensure(s.UserID)
			t.ensure(payer)
			t.Debt[s.UserID][payer] += s.Amount
			t.Totals[payer] += s.Amount
			t.Totals[s.UserID] -= s.Amount
		}
	}

	for _, s := range settlements {
		t.ensure(s.PaidByUserID)
		t.ensure(s.ReceivedByUserID)
		t.Totals[s.PaidByUserID] += s.Amount
		t.Totals[s.ReceivedByUserID] -= s.Amount
		t.Debt[s.PaidByUserID][s.ReceivedByUserID] -= s.Amount
	}

	return t
}

// ensure guards against records referencing users who are no longer group
// members (e.g. removed after the record was written).
func (t *GroupTally) ensure(id string) {
	if _, ok := t.Debt[id]; ok {
		return
	}
	t.Members = append(t.Members, id)
	t.Totals[id] = 0
	t.Debt[id] = make(map[string]float64)
}

// TallyCounterparts folds 1:1 expenses and settlements involving the subject
// into a signed net per counterpart (positive = the counterpart owes the
// subject). The returned order records each counterpart's first appearance so
// callers can sort with stable, insertion-ordered tie-breaking.
func TallyCounterparts(subjectID string, expenses []*models.Expense, settlements []*models.Settlement) (map[string]float64, []string) {
	nets := make(map[string]float64)
	var order []string

	touch := func(id string) {
		if _, ok := nets[id]; !ok {
			nets[id] = 0
			order = append(order, id)
		}
	}

	for _, e := range expenses {
		if e.PaidByUserID == subjectID {
			for _, s := range e.Splits {
				if !Outstanding(s, e.PaidByUserID) {
					continue
				}
				touch(s.UserID)
				nets[s.UserID] += s.Amount
			}
			continue
		}
		for _, s := range e.Splits {
			if s.UserID != subjectID || !Outstanding(s, e.PaidByUserID) {
				continue
			}
			touch(e.PaidByUserID)
			nets[e.PaidByUserID] -= s.Amount
		}
	}

	for _, s := range settlements {
		switch subjectID {
		case s.PaidByUserID:
			touch(s.ReceivedByUserID)
			nets[s.ReceivedByUserID] += s.Amount
		case s.ReceivedByUserID:
			touch(s.PaidByUserID)
			nets[s.PaidByUserID] -= s.Amount
		}
	}

	return nets, order
}
