// Package audit turns raw spreadsheet rows into scored company records and
// answers the record-set queries the dashboard needs.
package audit

import (
	"math"

	"github.com/sells-group/presence-audit/internal/model"
	"github.com/sells-group/presence-audit/internal/normalize"
	"github.com/sells-group/presence-audit/internal/resolve"
)

// Builder assembles CompanyRecords. It holds only immutable configuration.
type Builder struct {
	resolver  *resolve.Resolver
	platforms []model.PlatformDescriptor
}

// NewBuilder creates a Builder over a resolver and the ordered platform set.
func NewBuilder(resolver *resolve.Resolver, platforms []model.PlatformDescriptor) *Builder {
	return &Builder{
		resolver:  resolver,
		platforms: append([]model.PlatformDescriptor(nil), platforms...),
	}
}

// Platforms returns a copy of the builder's platform set.
func (b *Builder) Platforms() []model.PlatformDescriptor {
	return append([]model.PlatformDescriptor(nil), b.platforms...)
}

// Build scores every row that has a company name, in input order. Rows
// without a resolvable name are not company entries and are dropped.
func (b *Builder) Build(rows []model.RawRow) []model.CompanyRecord {
	clean := make([]model.RawRow, 0, len(rows))
	for _, row := range rows {
		if b.resolver.Value(row, resolve.FieldName) != "" {
			clean = append(clean, row)
		}
	}
	if len(clean) == 0 {
		return []model.CompanyRecord{}
	}

	// Cells are normalized once and reused for both the averages and the records.
	cells := make([][]cell, len(clean))
	totals := make([]int, len(b.platforms))
	for i, row := range clean {
		cells[i] = make([]cell, len(b.platforms))
		for j, p := range b.platforms {
			raw := b.resolver.Value(row, p.Key)
			c := cell{raw: raw, perf: normalize.Normalize(raw)}
			cells[i][j] = c
			totals[j] += c.perf.Score
		}
	}

	averages := make([]float64, len(b.platforms))
	for j, total := range totals {
		averages[j] = float64(total) / float64(len(clean))
	}

	records := make([]model.CompanyRecord, len(clean))
	for i, row := range clean {
		records[i] = b.record(row, cells[i], averages)
	}
	return records
}

type cell struct {
	raw  string
	perf normalize.Performance
}

func (b *Builder) record(row model.RawRow, cells []cell, averages []float64) model.CompanyRecord {
	platforms := make([]model.PlatformScore, len(b.platforms))
	sum := 0
	for j, p := range b.platforms {
		c := cells[j]
		status := model.StatusAbsent
		if c.perf.Score > 0 {
			status = model.StatusPresent
		}
		platforms[j] = model.PlatformScore{
			Name:        p.Key,
			Status:      status,
			Performance: c.perf.Level,
			Score:       c.perf.Score,
			Average:     averages[j],
			Color:       p.Color,
			Icon:        p.Icon,
			Raw:         c.raw,
		}
		sum += c.perf.Score
	}

	overall := OverallScore(sum, len(platforms))
	tier, comment := model.Visibility(overall)

	return model.CompanyRecord{
		Name:         b.resolver.Value(row, resolve.FieldName),
		City:         b.orUnresolved(row, resolve.FieldCity),
		Activity:     b.orUnresolved(row, resolve.FieldActivity),
		NAF:          b.orUnresolved(row, resolve.FieldNAF),
		OverallScore: overall,
		Platforms:    platforms,
		Visibility:   tier,
		Comment:      comment,
	}
}

func (b *Builder) orUnresolved(row model.RawRow, field string) string {
	if v := b.resolver.Value(row, field); v != "" {
		return v
	}
	return model.Unresolved
}

// OverallScore is the rounded mean of n platform scores summing to sum.
func OverallScore(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// ProcessData scores rows with the built-in synonyms and platforms.
func ProcessData(rows []model.RawRow) []model.CompanyRecord {
	return NewBuilder(resolve.Default(), model.DefaultPlatforms()).Build(rows)
}
