// Package aggregate computes population-level statistics over company records.
package aggregate

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/sells-group/presence-audit/internal/model"
)

// Mode selects how a company is scored for aggregation.
type Mode string

const (
	// ModePresence scores a company by the share of platforms it is present on.
	ModePresence Mode = "presence"
	// ModePerformance scores a company by its overall score.
	ModePerformance Mode = "performance"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePresence, ModePerformance:
		return Mode(s), nil
	default:
		return "", eris.Errorf("aggregate: unknown mode %q (want presence or performance)", s)
	}
}

// TopGroups caps the city and sector rankings.
const TopGroups = 10

// GroupScore is the mean company score of one city or sector.
type GroupScore struct {
	Name  string `json:"name" yaml:"name"`
	Score int    `json:"score" yaml:"score"`
	Count int    `json:"count" yaml:"count"`
}

// PlatformPerf is the mean platform score over the filtered subset.
type PlatformPerf struct {
	Name  string `json:"name" yaml:"name"`
	Score int    `json:"score" yaml:"score"`
	Color string `json:"color" yaml:"color"`
}

// Bucket is one band of the score distribution.
type Bucket struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
	Color string `json:"color" yaml:"color"`
}

// Stats is the dashboard view of a population and its filtered subset.
// Avg is nil when the subset is empty.
type Stats struct {
	Mode         Mode           `json:"mode" yaml:"mode"`
	Count        int            `json:"count" yaml:"count"`
	Avg          *float64       `json:"avg" yaml:"avg"`
	ByCity       []GroupScore   `json:"by_city" yaml:"by_city"`
	BySector     []GroupScore   `json:"by_sector" yaml:"by_sector"`
	PlatformPerf []PlatformPerf `json:"platform_perf" yaml:"platform_perf"`
	Distribution []Bucket       `json:"distribution" yaml:"distribution"`
}

// HasData reports whether the subset held any company.
func (s Stats) HasData() bool {
	return s.Avg != nil
}

// band is a half-open score range [min, max) of the distribution.
type band struct {
	name  string
	min   float64
	max   float64
	color string
}

var bands = []band{
	{name: "Excellent", min: 80, max: math.Inf(1), color: "#10b981"},
	{name: "Bon", min: 50, max: 80, color: "#3b82f6"},
	{name: "Moyen", min: 20, max: 50, color: "#f59e0b"},
	{name: "Faible", min: math.Inf(-1), max: 20, color: "#ef4444"},
}

// CompanyScore scores one company under the mode.
func CompanyScore(mode Mode, c *model.CompanyRecord) float64 {
	if mode == ModePerformance {
		return float64(c.OverallScore)
	}
	if len(c.Platforms) == 0 {
		return 0
	}
	return float64(c.PresentCount()) / float64(len(c.Platforms)) * 100
}

// Aggregate computes Stats. Rankings by city and sector always cover the full
// population so a filter can be judged against a stable baseline; platform
// bars, distribution and average cover the filtered subset only.
func Aggregate(mode Mode, platforms []model.PlatformDescriptor, full, subset []model.CompanyRecord) Stats {
	stats := Stats{
		Mode:     mode,
		Count:    len(subset),
		ByCity:   rank(mode, full, func(c *model.CompanyRecord) string { return c.City }),
		BySector: rank(mode, full, func(c *model.CompanyRecord) string { return c.Activity }),
	}

	stats.PlatformPerf = make([]PlatformPerf, len(platforms))
	for j, p := range platforms {
		stats.PlatformPerf[j] = PlatformPerf{
			Name:  p.Key,
			Score: platformMean(mode, p.Key, subset),
			Color: p.Color,
		}
	}

	stats.Distribution = make([]Bucket, len(bands))
	for i, b := range bands {
		stats.Distribution[i] = Bucket{Name: b.name, Color: b.color}
	}

	if len(subset) == 0 {
		return stats
	}

	var total float64
	for i := range subset {
		s := CompanyScore(mode, &subset[i])
		total += s
		for k, b := range bands {
			if s >= b.min && s < b.max {
				stats.Distribution[k].Value++
				break
			}
		}
	}
	avg := total / float64(len(subset))
	stats.Avg = &avg

	return stats
}

// rank groups records by key, scores each group by its rounded mean and
// keeps the best TopGroups. Ties keep first-seen order.
func rank(mode Mode, records []model.CompanyRecord, key func(*model.CompanyRecord) string) []GroupScore {
	type acc struct {
		total float64
		count int
	}
	var order []string
	groups := make(map[string]*acc)
	for i := range records {
		k := key(&records[i])
		if k == "" {
			k = model.Unresolved
		}
		g, ok := groups[k]
		if !ok {
			g = &acc{}
			groups[k] = g
			order = append(order, k)
		}
		g.total += CompanyScore(mode, &records[i])
		g.count++
	}

	out := make([]GroupScore, 0, len(order))
	for _, k := range order {
		g := groups[k]
		out = append(out, GroupScore{
			Name:  k,
			Score: int(math.Round(g.total / float64(g.count))),
			Count: g.count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if len(out) > TopGroups {
		out = out[:TopGroups]
	}
	return out
}

func platformMean(mode Mode, key string, subset []model.CompanyRecord) int {
	if len(subset) == 0 {
		return 0
	}
	total := 0
	for i := range subset {
		p, ok := subset[i].Platform(key)
		if !ok {
			continue
		}
		if mode == ModePerformance {
			total += p.Score
		} else if p.Present() {
			total += 100
		}
	}
	return int(math.Round(float64(total) / float64(len(subset))))
}
