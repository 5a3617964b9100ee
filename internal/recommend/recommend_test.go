package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/presence-audit/internal/model"
)

// scores builds platform scores in DefaultPlatforms order, defaulting to 100.
func scores(overrides map[string]int) []model.PlatformScore {
	var out []model.PlatformScore
	for _, p := range model.DefaultPlatforms() {
		s := 100
		if v, ok := overrides[p.Key]; ok {
			s = v
		}
		out = append(out, model.PlatformScore{Name: p.Key, Score: s})
	}
	return out
}

func TestRecommend_AllMaxedIsEmpty(t *testing.T) {
	recs := Recommend(scores(nil))
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_WorstFirst(t *testing.T) {
	recs := Recommend(scores(map[string]int{
		model.PlatformWebsite: 0,
		model.PlatformGMB:     25,
	}))

	require.Len(t, recs, 2)
	assert.Equal(t, "URGENT : Créer un site web vitrine moderne et responsive.", recs[0])
	assert.Equal(t, "GMB : Réclamer la propriété de votre fiche pour sécuriser vos infos.", recs[1])
}

func TestRecommend_CapsAtFour(t *testing.T) {
	all := make(map[string]int)
	for _, p := range model.DefaultPlatforms() {
		all[p.Key] = 0
	}
	recs := Recommend(scores(all))
	assert.Len(t, recs, MaxItems)
}

func TestRecommend_DoesNotReorderInput(t *testing.T) {
	in := scores(map[string]int{model.PlatformTripAdvisor: 25})
	Recommend(in)
	assert.Equal(t, model.PlatformFacebook, in[0].Name)
	assert.Equal(t, model.PlatformTripAdvisor, in[7].Name)
}

func TestRecommend_PlatformsWithoutRules(t *testing.T) {
	recs := Recommend(scores(map[string]int{
		model.PlatformLinkedIn:    0,
		model.PlatformPagesJaunes: 25,
		model.PlatformYouTube:     50,
	}))
	assert.Empty(t, recs)
}

func TestRecommend_TierBoundaries(t *testing.T) {
	tests := []struct {
		platform string
		score    int
		want     bool
	}{
		{model.PlatformFacebook, 0, true},
		{model.PlatformFacebook, 25, true},
		{model.PlatformFacebook, 50, true},
		{model.PlatformFacebook, 75, true},
		{model.PlatformInstagram, 50, true},
		{model.PlatformInstagram, 75, false},
		{model.PlatformTripAdvisor, 0, false},
		{model.PlatformTripAdvisor, 25, true},
		{model.PlatformTripAdvisor, 75, true},
		{model.PlatformWebsite, 75, true},
		{model.PlatformGMB, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			recs := Recommend(scores(map[string]int{tt.platform: tt.score}))
			if tt.want {
				assert.Len(t, recs, 1, "%s@%d", tt.platform, tt.score)
			} else {
				assert.Empty(t, recs, "%s@%d", tt.platform, tt.score)
			}
		})
	}
}

func TestRecommend_SameScoreKeepsPlatformOrder(t *testing.T) {
	recs := Recommend(scores(map[string]int{
		model.PlatformFacebook: 50,
		model.PlatformWebsite:  50,
	}))
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "Facebook")
	assert.Contains(t, recs[1], "Site Web")
}

func TestTable_Custom(t *testing.T) {
	table := NewTable([]Rule{{Platform: model.PlatformYouTube, Tier: 0, Message: "Lancer une chaîne."}})
	recs := table.Recommend(scores(map[string]int{model.PlatformYouTube: 0, model.PlatformWebsite: 0}))
	assert.Equal(t, []string{"Lancer une chaîne."}, recs)

	_, ok := table.Lookup(model.PlatformWebsite, 0)
	assert.False(t, ok)
}
