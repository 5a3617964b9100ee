package recommend

import "github.com/sells-group/presence-audit/internal/model"

// Rule is one entry of the action-plan decision table: the advice given for
// a platform sitting at a given score tier.
type Rule struct {
	Platform string
	Tier     int
	Message  string
}

const (
	msgFacebookCreate   = "Facebook : Créer une page professionnelle avec photo de couverture."
	msgInstagramStories = "Instagram : Publier des stories régulières pour humaniser votre enseigne."
	msgTripAdvisorClaim = "TripAdvisor : Certifier votre compte propriétaire pour répondre aux avis."
)

// DefaultRules is the built-in decision table. Platforms without entries
// (LinkedIn, Pages Jaunes, YouTube) never produce advice.
func DefaultRules() []Rule {
	return []Rule{
		{model.PlatformWebsite, 0, "URGENT : Créer un site web vitrine moderne et responsive."},
		{model.PlatformWebsite, 25, "Site Web : Actualiser les informations obsolètes et corriger les erreurs techniques."},
		{model.PlatformWebsite, 50, "Site Web : Enrichir le contenu (histoire, tarifs détaillés) et moderniser le design."},
		{model.PlatformWebsite, 75, "Site Web : Intégrer un module de réservation en ligne ou un blog actif."},

		{model.PlatformGMB, 0, "GMB : Créer une fiche d'établissement pour apparaître sur Google Maps."},
		{model.PlatformGMB, 25, "GMB : Réclamer la propriété de votre fiche pour sécuriser vos infos."},
		{model.PlatformGMB, 50, "GMB : Compléter la fiche (photos, description) pour booster le SEO local."},
		{model.PlatformGMB, 75, "GMB : Répondre systématiquement aux avis et publier des posts hebdomadaires."},

		{model.PlatformFacebook, 0, msgFacebookCreate},
		{model.PlatformFacebook, 25, msgFacebookCreate},
		{model.PlatformFacebook, 50, "Facebook : Relancer l'activité (dernière publication trop ancienne)."},
		{model.PlatformFacebook, 75, "Facebook : Améliorer l'interaction avec les abonnés et la qualité visuelle."},

		{model.PlatformInstagram, 0, msgInstagramStories},
		{model.PlatformInstagram, 25, msgInstagramStories},
		{model.PlatformInstagram, 50, msgInstagramStories},

		{model.PlatformTripAdvisor, 25, msgTripAdvisorClaim},
		{model.PlatformTripAdvisor, 50, msgTripAdvisorClaim},
		{model.PlatformTripAdvisor, 75, msgTripAdvisorClaim},
	}
}

type ruleKey struct {
	platform string
	tier     int
}

// Table is an indexed, read-only rule set.
type Table struct {
	rules map[ruleKey]string
}

// NewTable indexes rules by platform and tier. A later rule for the same
// key replaces an earlier one.
func NewTable(rules []Rule) *Table {
	t := &Table{rules: make(map[ruleKey]string, len(rules))}
	for _, r := range rules {
		t.rules[ruleKey{r.Platform, r.Tier}] = r.Message
	}
	return t
}

// Lookup returns the advice for a platform at a score tier.
func (t *Table) Lookup(platform string, tier int) (string, bool) {
	msg, ok := t.rules[ruleKey{platform, tier}]
	return msg, ok
}
