// Package resolve finds which spreadsheet column holds a logical field.
package resolve

import (
	"strings"

	"github.com/sells-group/presence-audit/internal/model"
)

// linkMarkers flag evidence-link columns ("Lien Facebook", "URL site") that
// must not be read as a platform's grade column.
var linkMarkers = []string{"lien", "url", "http", "link"}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAccentFolding toggles diacritic-insensitive header matching. It is off
// by default: headers are compared lowercased and trimmed only.
func WithAccentFolding(fold bool) Option {
	return func(r *Resolver) {
		r.fold = fold
	}
}

// Resolver maps logical fields to the actual headers of a row. It is
// immutable after construction and safe for concurrent use.
type Resolver struct {
	synonyms  map[string][]string
	platforms map[string]bool
	fold      bool
}

// New builds a Resolver over a synonym table and the platform set whose keys
// get the link-column exclusion.
func New(table SynonymTable, platforms []model.PlatformDescriptor, opts ...Option) *Resolver {
	r := &Resolver{
		platforms: make(map[string]bool, len(platforms)),
	}
	for _, o := range opts {
		o(r)
	}

	r.synonyms = make(map[string][]string, len(table))
	for field, list := range table {
		normalized := make([]string, 0, len(list))
		for _, s := range list {
			if n := normalizeHeader(s, r.fold); n != "" {
				normalized = append(normalized, n)
			}
		}
		r.synonyms[field] = normalized
	}
	for _, p := range platforms {
		r.platforms[p.Key] = true
	}
	return r
}

// Default returns a Resolver over the built-in synonyms and platforms.
func Default() *Resolver {
	return New(DefaultSynonyms(), model.DefaultPlatforms())
}

// synonymsFor returns the accepted spellings of a field. A field missing
// from the table is matched by its own lowercased name.
func (r *Resolver) synonymsFor(field string) []string {
	if s, ok := r.synonyms[field]; ok {
		return s
	}
	return []string{normalizeHeader(field, r.fold)}
}

// Resolve returns the header of row that holds field, or false when none does.
// An exact match on any synonym wins over a fuzzy one; within a pass the
// first header in sheet order wins.
func (r *Resolver) Resolve(row model.RawRow, field string) (string, bool) {
	synonyms := r.synonymsFor(field)
	headers := row.Headers()

	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h, r.fold)
	}

	for i, k := range normalized {
		for _, s := range synonyms {
			if k == s {
				return headers[i], true
			}
		}
	}

	isPlatform := r.platforms[field]
	for i, k := range normalized {
		if !fuzzyMatch(k, synonyms) {
			continue
		}
		if isPlatform && isLinkColumn(k) {
			continue
		}
		return headers[i], true
	}

	return "", false
}

// Value returns the trimmed cell value for field, or "" when the field
// cannot be resolved or the cell is empty.
func (r *Resolver) Value(row model.RawRow, field string) string {
	header, ok := r.Resolve(row, field)
	if !ok {
		return ""
	}
	v, _ := row.Get(header)
	return strings.TrimSpace(v)
}

func fuzzyMatch(header string, synonyms []string) bool {
	for _, s := range synonyms {
		if strings.HasPrefix(header, s) || strings.Contains(header, s) {
			return true
		}
	}
	return false
}

func isLinkColumn(header string) bool {
	for _, m := range linkMarkers {
		if strings.Contains(header, m) {
			return true
		}
	}
	return false
}
