// Package recommend builds the per-company action plan.
package recommend

import (
	"sort"

	"github.com/sells-group/presence-audit/internal/model"
)

// MaxItems caps the action plan.
const MaxItems = 4

var defaultTable = NewTable(DefaultRules())

// Recommend returns up to MaxItems actions, worst-scoring platforms first.
// An empty plan means every platform is either maxed out or has no advice
// at its tier. The input slice is not reordered.
func Recommend(platforms []model.PlatformScore) []string {
	return defaultTable.Recommend(platforms)
}

// Recommend applies the table to a company's platform scores.
func (t *Table) Recommend(platforms []model.PlatformScore) []string {
	sorted := append([]model.PlatformScore(nil), platforms...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

	recs := []string{}
	for _, p := range sorted {
		if p.Score >= 100 {
			continue
		}
		if msg, ok := t.Lookup(p.Name, p.Score); ok {
			recs = append(recs, msg)
		}
		if len(recs) == MaxItems {
			break
		}
	}
	return recs
}
