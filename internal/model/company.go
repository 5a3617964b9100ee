package model

// PerformanceLevel is the coarse quality tier of a platform value.
type PerformanceLevel string

const (
	LevelActive  PerformanceLevel = "Actif"
	LevelPassive PerformanceLevel = "Passif"
	LevelAbsent  PerformanceLevel = "Absent"
)

// PresenceStatus tells whether a company is present on a platform at all.
type PresenceStatus string

const (
	StatusPresent PresenceStatus = "present"
	StatusAbsent  PresenceStatus = "absent"
)

// VisibilityTier is the company-level digital maturity classification.
type VisibilityTier string

const (
	TierLow      VisibilityTier = "Faible"
	TierModerate VisibilityTier = "Modéré"
	TierDynamic  VisibilityTier = "Dynamique"
)

// Visibility thresholds on the overall score.
const (
	ModerateThreshold = 35
	DynamicThreshold  = 65
)

// Unresolved is the sentinel stored for identity fields that no column provided.
const Unresolved = "N/C"

// PlatformScore is one company's normalized result on one platform.
type PlatformScore struct {
	Name        string           `json:"name" yaml:"name"`
	Status      PresenceStatus   `json:"status" yaml:"status"`
	Performance PerformanceLevel `json:"performance" yaml:"performance"`
	Score       int              `json:"score" yaml:"score"`
	// Average is the population mean score for this platform; it is the same
	// value on every company of a dataset.
	Average float64 `json:"average" yaml:"average"`
	Color   string  `json:"color" yaml:"color"`
	Icon    string  `json:"icon" yaml:"icon"`
	Raw     string  `json:"raw" yaml:"raw"`
}

// Present reports whether the company has any signal on the platform.
func (p PlatformScore) Present() bool {
	return p.Status == StatusPresent
}

// CompanyRecord is the fully scored view of one spreadsheet row.
type CompanyRecord struct {
	Name         string          `json:"name" yaml:"name"`
	City         string          `json:"city" yaml:"city"`
	Activity     string          `json:"activity" yaml:"activity"`
	NAF          string          `json:"naf" yaml:"naf"`
	OverallScore int             `json:"overall_score" yaml:"overall_score"`
	Platforms    []PlatformScore `json:"platforms" yaml:"platforms"`
	Visibility   VisibilityTier  `json:"visibility_level" yaml:"visibility_level"`
	Comment      string          `json:"comment" yaml:"comment"`
}

// Platform returns the score for the given platform key.
func (c *CompanyRecord) Platform(key string) (PlatformScore, bool) {
	for _, p := range c.Platforms {
		if p.Name == key {
			return p, true
		}
	}
	return PlatformScore{}, false
}

// PresentCount returns how many platforms the company is present on.
func (c *CompanyRecord) PresentCount() int {
	n := 0
	for _, p := range c.Platforms {
		if p.Present() {
			n++
		}
	}
	return n
}

// Visibility maps an overall score to its tier and descriptive comment.
func Visibility(score int) (VisibilityTier, string) {
	switch {
	case score < ModerateThreshold:
		return TierLow, "Présence numérique insuffisante."
	case score < DynamicThreshold:
		return TierModerate, "Maturité moyenne, manque de régularité."
	default:
		return TierDynamic, "Excellente maîtrise des outils digitaux."
	}
}

// ScoreColor returns the display colour for a 0-100 score.
func ScoreColor(score float64) string {
	switch {
	case score >= 75:
		return "#10b981"
	case score >= 40:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}
