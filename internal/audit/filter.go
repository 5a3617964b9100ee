package audit

import (
	"math"
	"sort"
	"strings"

	"github.com/sells-group/presence-audit/internal/model"
)

// Filter selects a subset of records. Empty fields match everything; set
// fields are ANDed.
type Filter struct {
	City   string `json:"city,omitempty" yaml:"city,omitempty"`
	Sector string `json:"sector,omitempty" yaml:"sector,omitempty"`
	Search string `json:"search,omitempty" yaml:"search,omitempty"`
}

// Active reports whether any criterion is set.
func (f Filter) Active() bool {
	return f.City != "" || f.Sector != "" || f.Search != ""
}

// Match reports whether a record passes the filter. City and sector compare
// exactly; the search is a case-insensitive substring of the name.
func (f Filter) Match(c *model.CompanyRecord) bool {
	if f.City != "" && c.City != f.City {
		return false
	}
	if f.Sector != "" && c.Activity != f.Sector {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

// Apply returns the matching records in their original order.
func (f Filter) Apply(records []model.CompanyRecord) []model.CompanyRecord {
	out := make([]model.CompanyRecord, 0, len(records))
	for i := range records {
		if f.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// Cities returns the distinct cities of the records, sorted.
func Cities(records []model.CompanyRecord) []string {
	return distinct(records, func(c *model.CompanyRecord) string { return c.City })
}

// Sectors returns the distinct sectors of the records, sorted.
func Sectors(records []model.CompanyRecord) []string {
	return distinct(records, func(c *model.CompanyRecord) string { return c.Activity })
}

func distinct(records []model.CompanyRecord, key func(*model.CompanyRecord) string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range records {
		k := key(&records[i])
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Find returns the first record with the given name.
func Find(records []model.CompanyRecord, name string) (model.CompanyRecord, bool) {
	for _, c := range records {
		if c.Name == name {
			return c, true
		}
	}
	return model.CompanyRecord{}, false
}

// SectorComparison compares one company with the others of its sector.
type SectorComparison struct {
	Sector  string `json:"sector" yaml:"sector"`
	Average int    `json:"average" yaml:"average"`
	Delta   int    `json:"delta" yaml:"delta"`
	Peers   int    `json:"peers" yaml:"peers"`
}

// CompareSector returns the rounded mean overall score of every record sharing
// the company's sector (the company included) and the company's delta to it.
func CompareSector(records []model.CompanyRecord, company model.CompanyRecord) SectorComparison {
	cmp := SectorComparison{Sector: company.Activity}
	total := 0
	for _, c := range records {
		if c.Activity == company.Activity {
			total += c.OverallScore
			cmp.Peers++
		}
	}
	if cmp.Peers > 0 {
		cmp.Average = int(math.Round(float64(total) / float64(cmp.Peers)))
	}
	cmp.Delta = company.OverallScore - cmp.Average
	return cmp
}
