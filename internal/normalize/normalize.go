// Package normalize maps raw spreadsheet cell values onto the 0/25/50/75/100
// scoring scale.
package normalize

import (
	"slices"
	"strings"

	"github.com/sells-group/presence-audit/internal/model"
)

// Performance is the normalized reading of one platform cell.
type Performance struct {
	Level model.PerformanceLevel `json:"level" yaml:"level"`
	Score int                    `json:"score" yaml:"score"`
}

// Fixed scoring scale.
const (
	ScoreNone      = 0
	ScoreWeak      = 25
	ScoreAverage   = 50
	ScoreGood      = 75
	ScoreExcellent = 100
)

// codeTier groups the exact codes that map to one performance.
type codeTier struct {
	codes []string
	perf  Performance
}

// exactCodes is checked in order; the first tier holding the value wins.
var exactCodes = []codeTier{
	{codes: []string{"100", "A", "EXCELLENT"}, perf: Performance{model.LevelActive, ScoreExcellent}},
	{codes: []string{"75", "B", "BON"}, perf: Performance{model.LevelActive, ScoreGood}},
	{codes: []string{"50", "P", "MOYEN"}, perf: Performance{model.LevelPassive, ScoreAverage}},
	{codes: []string{"25", "I", "FAIBLE"}, perf: Performance{model.LevelPassive, ScoreWeak}},
	{codes: []string{"0", "X", "ABSENT"}, perf: Performance{model.LevelAbsent, ScoreNone}},
}

var (
	affirmative = []string{"OUI", "YES", "CERT"}
	negative    = []string{"NON", "NO"}
)

// Normalize maps a raw cell value to its performance level and score.
// The rules apply to the trimmed value. It is total: blank input is
// Absent/0, and any unrecognized non-empty text (a URL, a remark) counts as
// Passif/50.
func Normalize(raw string) Performance {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" {
		return Performance{model.LevelAbsent, ScoreNone}
	}

	for _, tier := range exactCodes {
		if slices.Contains(tier.codes, v) {
			return tier.perf
		}
	}

	if slices.Contains(affirmative, v) {
		return Performance{model.LevelActive, ScoreExcellent}
	}
	if slices.Contains(negative, v) {
		return Performance{model.LevelAbsent, ScoreNone}
	}

	return Performance{model.LevelPassive, ScoreAverage}
}
