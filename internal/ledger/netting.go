package ledger

import "sort"

// Net collapses the raw directional ledger so that every unordered pair of
// members carries at most one non-zero direction, equal to the absolute
// difference of the two raw directions. Pairs are visited exactly once under
// lexicographic order of member IDs; the order itself is irrelevant, only
// that each pair is processed once.
//
// Netting is pairwise only. Debt cycles across three or more members (A owes
// B, B owes C, C owes A) are deliberately left as separate pairwise entries
// rather than cancelled through the cycle.
//
// Net is idempotent: applying it to an already-netted ledger is a no-op.
func (t *GroupTally) Net() {
	ids := make([]string, len(t.Members))
	copy(ids, t.Members)
	sort.Strings(ids)

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			diff := t.Debt[a][b] - t.Debt[b][a]
			switch {
			case diff > 0:
				t.Debt[a][b] = diff
				t.Debt[b][a] = 0
			case diff < 0:
				t.Debt[b][a] = -diff
				t.Debt[a][b] = 0
			default:
				t.Debt[a][b] = 0
				t.Debt[b][a] = 0
			}
		}
	}
}
